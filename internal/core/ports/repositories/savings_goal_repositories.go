package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavingsGoalReader defines read operations for savings goals
type SavingsGoalReader interface {
	// FindSavingsGoalByID retrieves a goal owned by userID.
	FindSavingsGoalByID(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error)

	// ListSavingsGoalsByUser returns all goals of a user ordered by target date.
	ListSavingsGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
}

// SavingsGoalWriter defines write operations for savings goals
type SavingsGoalWriter interface {
	// SaveSavingsGoal persists a new goal. When contribution is non-nil the funding
	// expense is appended in the same storage transaction.
	SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal, contribution *domain.Transaction) error

	UpdateSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error

	// DeleteSavingsGoal removes the goal. Expenses that funded it are kept.
	DeleteSavingsGoal(ctx context.Context, userID, goalID string) error

	// ApplyContribution appends the funding expense and increases the goal's current
	// amount by amount, atomically. It returns the updated goal.
	ApplyContribution(ctx context.Context, userID, goalID string, amount decimal.Decimal, contribution domain.Transaction) (*domain.SavingsGoal, error)
}

// SavingsGoalRepositoryFacade combines all savings goal repository interfaces
type SavingsGoalRepositoryFacade interface {
	SavingsGoalReader
	SavingsGoalWriter
}
