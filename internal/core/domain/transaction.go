package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// RecurringPeriod is the repetition of a recurring transaction.
type RecurringPeriod string

const (
	Weekly   RecurringPeriod = "weekly"
	Biweekly RecurringPeriod = "biweekly"
	Monthly  RecurringPeriod = "monthly"
)

// IsValid reports whether p is one of the known periods.
func (p RecurringPeriod) IsValid() bool {
	switch p {
	case Weekly, Biweekly, Monthly:
		return true
	}
	return false
}

// Transaction is a single income or expense record owned by a user.
//
// IncomeSourceID is a weak reference to an income transaction that funds this expense.
// It is a lookup relation only: the referenced transaction may disappear independently.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"` // Positive value
	Type            TransactionType `json:"type"`
	Category        Category        `json:"category"`
	Date            time.Time       `json:"date"` // Calendar date, UTC midnight
	Description     string          `json:"description"`
	Recurring       bool            `json:"recurring"`
	RecurringPeriod RecurringPeriod `json:"recurringPeriod,omitempty"`
	IncomeSourceID  *string         `json:"incomeSourceID,omitempty"`
	AuditFields
}

// IsScoped reports whether the transaction is an expense tied to an income source.
func (t Transaction) IsScoped() bool {
	return t.Type == Expense && t.IncomeSourceID != nil && *t.IncomeSourceID != ""
}

// FundedBy reports whether t is an expense linked to the given income source.
func (t Transaction) FundedBy(sourceID string) bool {
	return t.IsScoped() && *t.IncomeSourceID == sourceID
}

// Validate checks the business rules enforced at the creation boundary.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !HasMoneyScale(t.Amount) {
		return fmt.Errorf("%w: amount must have at most 2 decimal places", apperrors.ErrValidation)
	}
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, t.Type)
	}
	if !t.Category.ValidFor(t.Type) {
		return fmt.Errorf("%w: category '%s' is not valid for %s transactions", apperrors.ErrValidation, t.Category, t.Type)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if t.Recurring && !t.RecurringPeriod.IsValid() {
		return fmt.Errorf("%w: recurring transactions need a period (weekly, biweekly, monthly)", apperrors.ErrValidation)
	}
	if !t.Recurring && t.RecurringPeriod != "" {
		return fmt.Errorf("%w: recurring period set on a non-recurring transaction", apperrors.ErrValidation)
	}
	if t.Type == Income && t.IncomeSourceID != nil {
		return fmt.Errorf("%w: income transactions cannot reference an income source", apperrors.ErrValidation)
	}
	if t.IncomeSourceID != nil && strings.TrimSpace(*t.IncomeSourceID) == "" {
		return fmt.Errorf("%w: income source ID must not be blank", apperrors.ErrValidation)
	}
	return nil
}
