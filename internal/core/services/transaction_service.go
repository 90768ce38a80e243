package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txRepo portsrepo.TransactionRepositoryFacade
	locks  *LedgerLocks
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the clock used for audit timestamps.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.Clock = now
	}
}

// WithTransactionLedgerLocks shares a lock table with other services that append expenses.
func WithTransactionLedgerLocks(locks *LedgerLocks) TransactionServiceOption {
	return func(s *transactionService) {
		s.locks = locks
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locks == nil {
		svc.locks = NewLedgerLocks()
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return accounting.SortByDate(txs), nil
}

func (s *transactionService) ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.ClampLimit(limit, defaultPageSize, maxPageSize)
	if nextToken != nil && *nextToken != "" {
		if _, err := pagination.DecodeToken(*nextToken); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	txs, next, err := s.txRepo.ListTransactionsPage(ctx, userID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transaction page", slog.String("user_id", userID), slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, next, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date '%s'", apperrors.ErrValidation, req.Date)
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		Amount:          req.Amount,
		Type:            req.Type,
		Category:        req.Category,
		Date:            date,
		Description:     strings.TrimSpace(req.Description),
		Recurring:       req.Recurring,
		RecurringPeriod: req.RecurringPeriod,
		IncomeSourceID:  normalizeSourceID(req.IncomeSourceID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if txn.IsScoped() {
		snapshot, err := s.txRepo.ListTransactionsByUser(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load ledger for admission check", slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		if err := admitExpense(ctx, &s.BaseService, snapshot, txn.Amount, *txn.IncomeSourceID); err != nil {
			return nil, err
		}
	}

	if err := s.txRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("category", string(txn.Category)),
		slog.Bool("scoped", txn.IsScoped()))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	existing, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date '%s'", apperrors.ErrValidation, *req.Date)
		}
		updated.Date = date
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Recurring != nil {
		updated.Recurring = *req.Recurring
		if !updated.Recurring {
			updated.RecurringPeriod = ""
		}
	}
	if req.RecurringPeriod != nil {
		updated.RecurringPeriod = *req.RecurringPeriod
	}
	if req.IncomeSourceID != nil {
		updated.IncomeSourceID = normalizeSourceID(req.IncomeSourceID)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	amountChanged := !updated.Amount.Equal(existing.Amount)
	sourceChanged := sourceOf(updated) != sourceOf(*existing)
	if updated.IsScoped() && (amountChanged || sourceChanged) {
		snapshot, err := s.txRepo.ListTransactionsByUser(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load ledger for admission check", slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		if err := admitExpense(ctx, &s.BaseService, accounting.Without(snapshot, transactionID), updated.Amount, *updated.IncomeSourceID); err != nil {
			return nil, err
		}
	}

	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID
	if err := s.txRepo.UpdateTransaction(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	existing, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.txRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("type", string(existing.Type)))
	return nil
}

func (s *transactionService) CheckAdmission(ctx context.Context, userID string, amount decimal.Decimal, incomeSourceID *string) (*domain.AdmissionDecision, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	sourceID := normalizeSourceID(incomeSourceID)
	if sourceID == nil {
		decision := accounting.Admission(amount, "", nil)
		return &decision, nil
	}

	snapshot, err := s.txRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for admission check", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if _, ok := accounting.FindIncomeSource(snapshot, *sourceID); !ok {
		return nil, fmt.Errorf("%w: income source %s not found", apperrors.ErrValidation, *sourceID)
	}
	decision := accounting.Admission(amount, *sourceID, snapshot)
	return &decision, nil
}

// admitExpense checks that sourceID is one of the user's incomes and that amount fits in its balance.
func admitExpense(ctx context.Context, base *BaseService, snapshot []domain.Transaction, amount decimal.Decimal, sourceID string) error {
	if _, ok := accounting.FindIncomeSource(snapshot, sourceID); !ok {
		return fmt.Errorf("%w: income source %s not found", apperrors.ErrValidation, sourceID)
	}
	if !accounting.CanAdmit(amount, sourceID, snapshot) {
		remaining := accounting.IncomeSourceBalance(snapshot, sourceID)
		base.LogWarn(ctx, "Expense rejected by admission check",
			slog.String("income_source_id", sourceID),
			slog.String("amount", amount.String()),
			slog.String("remaining", remaining.String()))
		return fmt.Errorf("%w: requested %s, remaining %s", apperrors.ErrInsufficientBalance, amount.StringFixed(2), remaining.StringFixed(2))
	}
	return nil
}

func normalizeSourceID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sourceOf(t domain.Transaction) string {
	if t.IncomeSourceID == nil {
		return ""
	}
	return *t.IncomeSourceID
}
