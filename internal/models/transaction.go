package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the storage row of an income or expense.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"` // income or expense
	Category        string          `db:"category"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Recurring       bool            `db:"recurring"`
	RecurringPeriod sql.NullString  `db:"recurring_period"`
	IncomeSourceID  sql.NullString  `db:"income_source_id"` // FK -> transactions.transaction_id, expenses only
	AuditFields
}
