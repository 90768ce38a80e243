package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/shopspring/decimal"
)

// MonthlyReportParams selects the month of a monthly report.
type MonthlyReportParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"` // YYYY-MM, defaults to the current month
}

// CategoryBudgetResponse is one row of the budget breakdown.
type CategoryBudgetResponse struct {
	Category           domain.Category `json:"category"`
	Spent              decimal.Decimal `json:"spent" swaggertype:"string"`
	SpentFormatted     string          `json:"spentFormatted"`
	Limit              decimal.Decimal `json:"limit" swaggertype:"string"`
	LimitFormatted     string          `json:"limitFormatted"`
	PercentUsed        decimal.Decimal `json:"percentUsed" swaggertype:"string"`
	PercentUsedDisplay string          `json:"percentUsedFormatted"`
	ProgressWidth      decimal.Decimal `json:"progressWidth" swaggertype:"string"`
	Status             string          `json:"status"` // ok, warning or danger
	OverBudget         bool            `json:"overBudget"`
}

// SavingsTargetResponse compares net balance with the savings target.
type SavingsTargetResponse struct {
	Rate            decimal.Decimal `json:"rate" swaggertype:"string"`
	Target          decimal.Decimal `json:"target" swaggertype:"string"`
	TargetFormatted string          `json:"targetFormatted"`
	Progress        decimal.Decimal `json:"progress" swaggertype:"string"`
}

// OverviewResponse is the dashboard summary.
type OverviewResponse struct {
	TotalIncome            decimal.Decimal          `json:"totalIncome" swaggertype:"string"`
	TotalIncomeFormatted   string                   `json:"totalIncomeFormatted"`
	TotalExpenses          decimal.Decimal          `json:"totalExpenses" swaggertype:"string"`
	TotalExpensesFormatted string                   `json:"totalExpensesFormatted"`
	NetBalance             decimal.Decimal          `json:"netBalance" swaggertype:"string"`
	NetBalanceFormatted    string                   `json:"netBalanceFormatted"`
	SavingsRate            decimal.Decimal          `json:"savingsRate" swaggertype:"string"`
	SavingsRateFormatted   string                   `json:"savingsRateFormatted"`
	SavingsTarget          SavingsTargetResponse    `json:"savingsTarget"`
	Categories             []CategoryBudgetResponse `json:"categories"`
	ActiveGoals            int                      `json:"activeGoals"`
	TransactionCount       int                      `json:"transactionCount"`
}

// IncomeSourceResponse shows how much of an income transaction remains.
type IncomeSourceResponse struct {
	Source             TransactionResponse   `json:"source"`
	Total              decimal.Decimal       `json:"total" swaggertype:"string"`
	Spent              decimal.Decimal       `json:"spent" swaggertype:"string"`
	Remaining          decimal.Decimal       `json:"remaining" swaggertype:"string"`
	RemainingFormatted string                `json:"remainingFormatted"`
	UsagePercent       decimal.Decimal       `json:"usagePercent" swaggertype:"string"`
	Status             string                `json:"status"`
	LinkedExpenses     []TransactionResponse `json:"linkedExpenses"`
}

// CategoryShareResponse is one category's share of a month's expenses.
type CategoryShareResponse struct {
	Category         domain.Category `json:"category"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string"`
	Percent          decimal.Decimal `json:"percent" swaggertype:"string"`
	PercentFormatted string          `json:"percentFormatted"`
}

// DailySpendingResponse is the expense total of a single day.
type DailySpendingResponse struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// IncomeBreakdownResponse totals a month's income of one category.
type IncomeBreakdownResponse struct {
	Category  domain.Category `json:"category"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	Spent     decimal.Decimal `json:"spent" swaggertype:"string"`
	Remaining decimal.Decimal `json:"remaining" swaggertype:"string"`
}

// MonthlyReportResponse is the report of a single month.
type MonthlyReportResponse struct {
	Month           string                    `json:"month"` // YYYY-MM
	TotalIncome     decimal.Decimal           `json:"totalIncome" swaggertype:"string"`
	TotalExpenses   decimal.Decimal           `json:"totalExpenses" swaggertype:"string"`
	NetBalance      decimal.Decimal           `json:"netBalance" swaggertype:"string"`
	SavingsRate     decimal.Decimal           `json:"savingsRate" swaggertype:"string"`
	ExpenseShares   []CategoryShareResponse   `json:"expenseShares"`
	DailySpending   []DailySpendingResponse   `json:"dailySpending"`
	IncomeBreakdown []IncomeBreakdownResponse `json:"incomeBreakdown"`
}

// ToCategoryBudgetResponses converts budget rows.
func ToCategoryBudgetResponses(rows []domain.CategoryBudget) []CategoryBudgetResponse {
	res := make([]CategoryBudgetResponse, len(rows))
	for i, r := range rows {
		res[i] = CategoryBudgetResponse{
			Category:           r.Category,
			Spent:              r.Spent,
			SpentFormatted:     utils.FormatCurrency(r.Spent),
			Limit:              r.Limit,
			LimitFormatted:     utils.FormatCurrency(r.Limit),
			PercentUsed:        r.PercentUsed,
			PercentUsedDisplay: utils.FormatPercent(r.PercentUsed),
			ProgressWidth:      utils.ProgressWidth(r.PercentUsed),
			Status:             utils.UsageStatus(r.PercentUsed),
			OverBudget:         r.OverBudget,
		}
	}
	return res
}

// ToOverviewResponse converts the dashboard overview.
func ToOverviewResponse(o *domain.BudgetOverview) OverviewResponse {
	return OverviewResponse{
		TotalIncome:            o.TotalIncome,
		TotalIncomeFormatted:   utils.FormatCurrency(o.TotalIncome),
		TotalExpenses:          o.TotalExpenses,
		TotalExpensesFormatted: utils.FormatCurrency(o.TotalExpenses),
		NetBalance:             o.NetBalance,
		NetBalanceFormatted:    utils.FormatCurrency(o.NetBalance),
		SavingsRate:            o.SavingsRate,
		SavingsRateFormatted:   utils.FormatPercent(o.SavingsRate),
		SavingsTarget: SavingsTargetResponse{
			Rate:            o.SavingsTarget.Rate,
			Target:          o.SavingsTarget.Target,
			TargetFormatted: utils.FormatCurrency(o.SavingsTarget.Target),
			Progress:        o.SavingsTarget.Progress,
		},
		Categories:       ToCategoryBudgetResponses(o.Categories),
		ActiveGoals:      o.ActiveGoals,
		TransactionCount: o.TransactionCount,
	}
}

// ToIncomeSourceResponse converts one income source summary.
func ToIncomeSourceResponse(s *domain.IncomeSourceSummary) IncomeSourceResponse {
	return IncomeSourceResponse{
		Source:             ToTransactionResponse(&s.Source),
		Total:              s.Total,
		Spent:              s.Spent,
		Remaining:          s.Remaining,
		RemainingFormatted: utils.FormatCurrency(s.Remaining),
		UsagePercent:       s.UsagePercent,
		Status:             utils.UsageStatus(s.UsagePercent),
		LinkedExpenses:     ToTransactionResponses(s.LinkedExpenses),
	}
}

// ToIncomeSourceResponses converts income source summaries.
func ToIncomeSourceResponses(summaries []domain.IncomeSourceSummary) []IncomeSourceResponse {
	res := make([]IncomeSourceResponse, len(summaries))
	for i := range summaries {
		res[i] = ToIncomeSourceResponse(&summaries[i])
	}
	return res
}

// ToMonthlyReportResponse converts a monthly report.
func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	res := MonthlyReportResponse{
		Month:           fmt.Sprintf("%04d-%02d", r.Year, int(r.Month)),
		TotalIncome:     r.TotalIncome,
		TotalExpenses:   r.TotalExpenses,
		NetBalance:      r.NetBalance,
		SavingsRate:     r.SavingsRate,
		ExpenseShares:   make([]CategoryShareResponse, len(r.ExpenseShares)),
		DailySpending:   make([]DailySpendingResponse, len(r.DailySpending)),
		IncomeBreakdown: make([]IncomeBreakdownResponse, len(r.IncomeBreakdown)),
	}
	for i, s := range r.ExpenseShares {
		res.ExpenseShares[i] = CategoryShareResponse{
			Category:         s.Category,
			Amount:           s.Amount,
			Percent:          s.Percent,
			PercentFormatted: utils.FormatPercent(s.Percent),
		}
	}
	for i, d := range r.DailySpending {
		res.DailySpending[i] = DailySpendingResponse{Date: d.Date.Format(domain.DateLayout), Amount: d.Amount}
	}
	for i, b := range r.IncomeBreakdown {
		res.IncomeBreakdown[i] = IncomeBreakdownResponse(b)
	}
	return res
}

// ParseMonth parses YYYY-MM, returning the current month of now when s is empty.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
