package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// reportingService implements the ReportingService interface.
// Every call loads a fresh snapshot; nothing is cached.
type reportingService struct {
	BaseService
	txRepo   portsrepo.TransactionReader
	goalRepo portsrepo.SavingsGoalReader
	policy   domain.BudgetPolicy
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithBudgetPolicy sets the category limits used by budget reports.
func WithBudgetPolicy(policy domain.BudgetPolicy) ReportingServiceOption {
	return func(s *reportingService) {
		s.policy = policy
	}
}

// WithReportingClock overrides the clock used for goal progress.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Clock = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(txRepo portsrepo.TransactionReader, goalRepo portsrepo.SavingsGoalReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		txRepo:   txRepo,
		goalRepo: goalRepo,
		policy:   domain.DefaultBudgetPolicy(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Overview loads transactions and goals concurrently and builds the dashboard summary
func (s *reportingService) Overview(ctx context.Context, userID string) (*domain.BudgetOverview, error) {
	var (
		txs   []domain.Transaction
		goals []domain.SavingsGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.txRepo.ListTransactionsByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.ListSavingsGoalsByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load savings goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build overview", slog.String("user_id", userID))
		return nil, err
	}

	active := 0
	for _, goal := range goals {
		if !goal.IsComplete() {
			active++
		}
	}

	income := accounting.TotalByType(txs, domain.Income)
	expenses := accounting.TotalByType(txs, domain.Expense)
	overview := &domain.BudgetOverview{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		NetBalance:       income.Sub(expenses),
		SavingsRate:      accounting.SavingsRate(txs),
		SavingsTarget:    accounting.SavingsTargetProgress(txs, s.policy.SavingsTargetRate),
		Categories:       accounting.CategoryBreakdown(txs, s.policy),
		ActiveGoals:      active,
		TransactionCount: len(txs),
	}

	s.LogDebug(ctx, "Overview generated",
		slog.Int("transaction_count", len(txs)),
		slog.Int("goal_count", len(goals)))
	return overview, nil
}

func (s *reportingService) CategoryBudgets(ctx context.Context, userID string) ([]domain.CategoryBudget, error) {
	txs, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return accounting.CategoryBreakdown(txs, s.policy), nil
}

func (s *reportingService) IncomeSources(ctx context.Context, userID string) ([]domain.IncomeSourceSummary, error) {
	txs, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return accounting.IncomeSourceSummaries(txs), nil
}

func (s *reportingService) IncomeSourceBalance(ctx context.Context, userID, sourceID string) (*domain.IncomeSourceSummary, error) {
	txs, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	source, ok := accounting.FindIncomeSource(txs, sourceID)
	if !ok {
		return nil, fmt.Errorf("income source %s: %w", sourceID, apperrors.ErrNotFound)
	}
	summary := accounting.SummarizeIncomeSource(txs, source)
	return &summary, nil
}

func (s *reportingService) GoalProgress(ctx context.Context, userID string) ([]domain.GoalProgress, error) {
	goals, err := s.goalRepo.ListSavingsGoalsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load savings goals", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load savings goals: %w", err)
	}
	today := s.Today()
	progress := make([]domain.GoalProgress, len(goals))
	for i, goal := range goals {
		progress[i] = accounting.GoalProgress(goal, today)
	}
	return progress, nil
}

func (s *reportingService) MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	txs, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := accounting.MonthlyReport(txs, year, month)
	return &report, nil
}

func (s *reportingService) snapshot(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txs, nil
}
