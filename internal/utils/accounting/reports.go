package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyReport aggregates the transactions dated in the given month.
// Only transactions inside the month take part, including when linking expenses to income.
func MonthlyReport(txs []domain.Transaction, year int, month time.Month) domain.MonthlyReport {
	monthly := FilterByMonth(txs, year, month)
	income := TotalByType(monthly, domain.Income)
	expenses := TotalByType(monthly, domain.Expense)

	return domain.MonthlyReport{
		Year:            year,
		Month:           month,
		TotalIncome:     income,
		TotalExpenses:   expenses,
		NetBalance:      income.Sub(expenses),
		SavingsRate:     SavingsRate(monthly),
		ExpenseShares:   expenseShares(monthly, expenses),
		DailySpending:   dailySpending(monthly, year, month),
		IncomeBreakdown: incomeBreakdown(monthly),
	}
}

func expenseShares(monthly []domain.Transaction, total decimal.Decimal) []domain.CategoryShare {
	byCat := ExpensesByCategory(monthly)
	shares := make([]domain.CategoryShare, 0, len(byCat))
	for cat, amount := range byCat {
		shares = append(shares, domain.CategoryShare{
			Category: cat,
			Amount:   amount,
			Percent:  Percent(amount, total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		return domain.ExpenseCategoryLess(shares[i].Category, shares[j].Category)
	})
	return shares
}

func dailySpending(monthly []domain.Transaction, year int, month time.Month) []domain.DailySpending {
	perDay := make(map[int]decimal.Decimal)
	for _, t := range monthly {
		if t.Type == domain.Expense {
			perDay[t.Date.Day()] = perDay[t.Date.Day()].Add(t.Amount)
		}
	}

	days := DaysInMonth(year, month)
	out := make([]domain.DailySpending, 0, len(days))
	for _, d := range days {
		out = append(out, domain.DailySpending{Date: d, Amount: perDay[d.Day()]})
	}
	return out
}

// incomeBreakdown groups the month's income by category. Spent counts the month's expenses
// linked to any income transaction of that category.
func incomeBreakdown(monthly []domain.Transaction) []domain.IncomeCategoryBreakdown {
	rows := make(map[domain.Category]*domain.IncomeCategoryBreakdown)
	var order []domain.Category
	for _, t := range monthly {
		if t.Type != domain.Income {
			continue
		}
		row, ok := rows[t.Category]
		if !ok {
			row = &domain.IncomeCategoryBreakdown{Category: t.Category}
			rows[t.Category] = row
			order = append(order, t.Category)
		}
		row.Total = row.Total.Add(t.Amount)
		row.Spent = row.Spent.Add(SpentFromSource(monthly, t.TransactionID))
	}

	out := make([]domain.IncomeCategoryBreakdown, 0, len(order))
	for _, cat := range order {
		row := rows[cat]
		row.Remaining = row.Total.Sub(row.Spent)
		out = append(out, *row)
	}
	return out
}
