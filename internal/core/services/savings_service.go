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
	"github.com/google/uuid"
)

// savingsService implements the SavingsSvcFacade interface
type savingsService struct {
	BaseService
	goalRepo portsrepo.SavingsGoalRepositoryFacade
	txRepo   portsrepo.TransactionReader
	locks    *LedgerLocks
}

// SavingsServiceOption is a functional option for configuring the savings service
type SavingsServiceOption func(*savingsService)

// WithSavingsClock overrides the clock used for contribution dates and audit fields.
func WithSavingsClock(now func() time.Time) SavingsServiceOption {
	return func(s *savingsService) {
		s.Clock = now
	}
}

// WithSavingsLedgerLocks shares a lock table with the transaction service.
func WithSavingsLedgerLocks(locks *LedgerLocks) SavingsServiceOption {
	return func(s *savingsService) {
		s.locks = locks
	}
}

// NewSavingsService creates a new savings goal service with the provided options
func NewSavingsService(goalRepo portsrepo.SavingsGoalRepositoryFacade, txRepo portsrepo.TransactionReader, options ...SavingsServiceOption) portssvc.SavingsSvcFacade {
	svc := &savingsService{
		goalRepo: goalRepo,
		txRepo:   txRepo,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locks == nil {
		svc.locks = NewLedgerLocks()
	}
	return svc
}

var _ portssvc.SavingsSvcFacade = (*savingsService)(nil)

func (s *savingsService) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	goals, err := s.goalRepo.ListSavingsGoalsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings goals", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	return goals, nil
}

func (s *savingsService) GetGoal(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.FindSavingsGoalByID(ctx, userID, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get savings goal", slog.String("goal_id", goalID))
		}
		return nil, fmt.Errorf("failed to get savings goal %s: %w", goalID, err)
	}
	return goal, nil
}

func (s *savingsService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	targetDate, err := domain.ParseDate(req.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target date '%s'", apperrors.ErrValidation, req.TargetDate)
	}
	if !targetDate.After(s.Today()) {
		return nil, fmt.Errorf("%w: target date must be in the future", apperrors.ErrValidation)
	}

	now := s.Now()
	goal := domain.SavingsGoal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
		Description:   strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	var contribution *domain.Transaction
	if req.InitialContribution != nil {
		unlock := s.locks.Lock(userID)
		defer unlock()

		c, err := s.prepareContribution(ctx, userID, goal, *req.InitialContribution)
		if err != nil {
			return nil, err
		}
		contribution = c
		goal.CurrentAmount = goal.CurrentAmount.Add(c.Amount)
	}

	if err := s.goalRepo.SaveSavingsGoal(ctx, goal, contribution); err != nil {
		s.LogError(ctx, err, "Failed to save savings goal", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save savings goal: %w", err)
	}

	s.LogInfo(ctx, "Savings goal created",
		slog.String("goal_id", goal.GoalID),
		slog.Bool("funded", contribution != nil))
	return &goal, nil
}

func (s *savingsService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	existing, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.TargetAmount != nil {
		updated.TargetAmount = *req.TargetAmount
	}
	if req.TargetDate != nil {
		targetDate, err := domain.ParseDate(*req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid target date '%s'", apperrors.ErrValidation, *req.TargetDate)
		}
		updated.TargetDate = targetDate
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID
	if err := s.goalRepo.UpdateSavingsGoal(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update savings goal", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}
	return &updated, nil
}

func (s *savingsService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.GetGoal(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.goalRepo.DeleteSavingsGoal(ctx, userID, goalID); err != nil {
		s.LogError(ctx, err, "Failed to delete savings goal", slog.String("goal_id", goalID))
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	s.LogInfo(ctx, "Savings goal deleted", slog.String("goal_id", goalID))
	return nil
}

func (s *savingsService) Contribute(ctx context.Context, userID, goalID string, req dto.ContributionRequest) (*domain.SavingsGoal, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	contribution, err := s.prepareContribution(ctx, userID, *goal, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.goalRepo.ApplyContribution(ctx, userID, goalID, contribution.Amount, *contribution)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply contribution", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to apply contribution: %w", err)
	}

	s.LogInfo(ctx, "Contribution applied",
		slog.String("goal_id", goalID),
		slog.String("amount", contribution.Amount.String()),
		slog.String("current_amount", updated.CurrentAmount.String()))
	return updated, nil
}

// prepareContribution builds the savings expense that funds goal and runs the admission check
// when it draws from an income source. The caller must hold the user's ledger lock.
func (s *savingsService) prepareContribution(ctx context.Context, userID string, goal domain.SavingsGoal, req dto.ContributionRequest) (*domain.Transaction, error) {
	now := s.Now()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		UserID:         userID,
		Amount:         req.Amount,
		Type:           domain.Expense,
		Category:       domain.CategorySavings,
		Date:           s.Today(),
		Description:    goal.ContributionDescription(),
		IncomeSourceID: normalizeSourceID(req.IncomeSourceID),
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
	return &txn, nil
}
