package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// SortByDate returns a sorted copy of txs: newest date first, then most recently created,
// then by transaction ID so equal rows always land in the same place.
func SortByDate(txs []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return NewerThan(sorted[i], sorted[j])
	})
	return sorted
}

// NewerThan is the history order used by SortByDate.
func NewerThan(a, b domain.Transaction) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.TransactionID > b.TransactionID
}

// FilterByMonth keeps the transactions dated inside the given calendar month.
func FilterByMonth(txs []domain.Transaction, year int, month time.Month) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for _, t := range txs {
		y, m, _ := t.Date.Date()
		if y == year && m == month {
			out = append(out, t)
		}
	}
	return out
}

// DaysInMonth returns every calendar day of the month, in order.
func DaysInMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var days []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
