package accounting

import (
	"sort"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown reports spend against the policy limit for every expense category present
// in txs. Limits are fractions of total income. Rows come back in canonical category order.
func CategoryBreakdown(txs []domain.Transaction, policy domain.BudgetPolicy) []domain.CategoryBudget {
	income := TotalByType(txs, domain.Income)

	spent := ExpensesByCategory(txs)

	rows := make([]domain.CategoryBudget, 0, len(spent))
	for cat, amount := range spent {
		limit := income.Mul(policy.LimitFraction(cat))
		rows = append(rows, domain.CategoryBudget{
			Category:    cat,
			Spent:       amount,
			Limit:       limit,
			PercentUsed: Percent(amount, limit),
			OverBudget:  amount.GreaterThan(limit),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return domain.ExpenseCategoryLess(rows[i].Category, rows[j].Category)
	})
	return rows
}

// ExpensesByCategory sums expenses per category.
func ExpensesByCategory(txs []domain.Transaction) map[domain.Category]decimal.Decimal {
	out := make(map[domain.Category]decimal.Decimal)
	for _, t := range txs {
		if t.Type == domain.Expense {
			out[t.Category] = out[t.Category].Add(t.Amount)
		}
	}
	return out
}
