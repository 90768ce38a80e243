// Package accounting holds the pure ledger calculations shared by services and reports.
// Every function works on a snapshot of transactions, never mutates its input and never fails.
package accounting

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalByType sums the amounts of all transactions of the given type. No rounding is applied.
func TotalByType(txs []domain.Transaction, txType domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type == txType {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// NetBalance is total income minus total expenses. It may be negative.
func NetBalance(txs []domain.Transaction) decimal.Decimal {
	return TotalByType(txs, domain.Income).Sub(TotalByType(txs, domain.Expense))
}

// SavingsRate is the net balance as a percentage of total income, or 0 without income.
func SavingsRate(txs []domain.Transaction) decimal.Decimal {
	return Percent(NetBalance(txs), TotalByType(txs, domain.Income))
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
