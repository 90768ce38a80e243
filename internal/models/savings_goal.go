package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is the storage row of a savings goal.
type SavingsGoal struct {
	GoalID        string          `db:"goal_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	TargetDate    time.Time       `db:"target_date"`
	Description   string          `db:"description"`
	AuditFields
}
