package accounting

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FindIncomeSource returns the income transaction with the given id.
func FindIncomeSource(txs []domain.Transaction, id string) (domain.Transaction, bool) {
	for _, t := range txs {
		if t.TransactionID == id && t.Type == domain.Income {
			return t, true
		}
	}
	return domain.Transaction{}, false
}

// LinkedExpenses returns the expenses funded by sourceID, in snapshot order.
func LinkedExpenses(txs []domain.Transaction, sourceID string) []domain.Transaction {
	var linked []domain.Transaction
	for _, t := range txs {
		if t.FundedBy(sourceID) {
			linked = append(linked, t)
		}
	}
	return linked
}

// SpentFromSource sums the expenses funded by sourceID.
func SpentFromSource(txs []domain.Transaction, sourceID string) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range txs {
		if t.FundedBy(sourceID) {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

// IncomeSourceBalance is the source amount minus every expense linked to it.
// A source missing from txs counts as 0, so the result may be negative.
func IncomeSourceBalance(txs []domain.Transaction, sourceID string) decimal.Decimal {
	amount := decimal.Zero
	if src, ok := FindIncomeSource(txs, sourceID); ok {
		amount = src.Amount
	}
	return amount.Sub(SpentFromSource(txs, sourceID))
}

// IncomeSourceSummaries builds one summary per income transaction, in snapshot order.
func IncomeSourceSummaries(txs []domain.Transaction) []domain.IncomeSourceSummary {
	summaries := make([]domain.IncomeSourceSummary, 0)
	for _, t := range txs {
		if t.Type != domain.Income {
			continue
		}
		summaries = append(summaries, SummarizeIncomeSource(txs, t))
	}
	return summaries
}

// SummarizeIncomeSource computes totals for a single income transaction.
func SummarizeIncomeSource(txs []domain.Transaction, source domain.Transaction) domain.IncomeSourceSummary {
	linked := LinkedExpenses(txs, source.TransactionID)
	spent := decimal.Zero
	for _, e := range linked {
		spent = spent.Add(e.Amount)
	}
	if linked == nil {
		linked = []domain.Transaction{}
	}
	return domain.IncomeSourceSummary{
		Source:         source,
		Total:          source.Amount,
		Spent:          spent,
		Remaining:      source.Amount.Sub(spent),
		UsagePercent:   Percent(spent, source.Amount),
		LinkedExpenses: linked,
	}
}
