package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SavingsGoal is a named savings target with the amount already put aside.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	Description   string          `json:"description"`
	AuditFields
}

// IsComplete reports whether the goal has reached its target.
func (g SavingsGoal) IsComplete() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// ContributionDescription is the description given to the expense that funds the goal.
func (g SavingsGoal) ContributionDescription() string {
	return "Contribution to savings goal: " + g.Name
}

// Validate checks the amount and naming rules of a goal.
func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: goal name is required", apperrors.ErrValidation)
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: current amount cannot be negative", apperrors.ErrValidation)
	}
	if !HasMoneyScale(g.TargetAmount) || !HasMoneyScale(g.CurrentAmount) {
		return fmt.Errorf("%w: goal amounts must have at most 2 decimal places", apperrors.ErrValidation)
	}
	if g.TargetDate.IsZero() {
		return fmt.Errorf("%w: target date is required", apperrors.ErrValidation)
	}
	return nil
}
