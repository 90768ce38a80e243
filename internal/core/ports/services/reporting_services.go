package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// ReportingService derives budget, balance and report views from a user's ledger
type ReportingService interface {
	// Overview builds the dashboard summary.
	Overview(ctx context.Context, userID string) (*domain.BudgetOverview, error)

	// CategoryBudgets compares expense categories with their limits.
	CategoryBudgets(ctx context.Context, userID string) ([]domain.CategoryBudget, error)

	// IncomeSources summarizes every income transaction and what was spent from it.
	IncomeSources(ctx context.Context, userID string) ([]domain.IncomeSourceSummary, error)

	// IncomeSourceBalance summarizes a single income source.
	IncomeSourceBalance(ctx context.Context, userID, sourceID string) (*domain.IncomeSourceSummary, error)

	// GoalProgress derives the progress of every goal.
	GoalProgress(ctx context.Context, userID string) ([]domain.GoalProgress, error)

	// MonthlyReport aggregates a single calendar month.
	MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthlyReport, error)
}
