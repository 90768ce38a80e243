package accounting

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CanAdmit reports whether an expense of candidate may be charged to sourceID.
// An empty sourceID is always admitted. Spending exactly the remaining balance is allowed.
func CanAdmit(candidate decimal.Decimal, sourceID string, txs []domain.Transaction) bool {
	if sourceID == "" {
		return true
	}
	return candidate.LessThanOrEqual(IncomeSourceBalance(txs, sourceID))
}

// Admission returns the full decision for candidate, including the balance it was checked against.
func Admission(candidate decimal.Decimal, sourceID string, txs []domain.Transaction) domain.AdmissionDecision {
	decision := domain.AdmissionDecision{
		Admitted:        CanAdmit(candidate, sourceID, txs),
		SourceID:        sourceID,
		RequestedAmount: candidate,
	}
	if sourceID != "" {
		decision.Remaining = IncomeSourceBalance(txs, sourceID)
	}
	return decision
}

// Without returns a copy of txs that omits the transaction with the given id.
// Used to re-check an edited expense without counting its old amount.
func Without(txs []domain.Transaction, id string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.TransactionID != id {
			out = append(out, t)
		}
	}
	return out
}
