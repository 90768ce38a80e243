package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryBudget is the spend-versus-limit row for one expense category.
type CategoryBudget struct {
	Category    Category        `json:"category"`
	Spent       decimal.Decimal `json:"spent"`
	Limit       decimal.Decimal `json:"limit"`       // Total income times the policy fraction
	PercentUsed decimal.Decimal `json:"percentUsed"` // 0 when limit is 0
	OverBudget  bool            `json:"overBudget"`
}

// IncomeSourceSummary describes how much of an income transaction has been spent.
type IncomeSourceSummary struct {
	Source         Transaction     `json:"source"`
	Total          decimal.Decimal `json:"total"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	UsagePercent   decimal.Decimal `json:"usagePercent"`
	LinkedExpenses []Transaction   `json:"linkedExpenses"`
}

// GoalProgress is the derived view of a savings goal at a given day.
type GoalProgress struct {
	Goal          SavingsGoal     `json:"goal"`
	Percent       decimal.Decimal `json:"percent"` // Clamped to 100
	Remaining     decimal.Decimal `json:"remaining"`
	DaysRemaining int             `json:"daysRemaining"` // Negative when overdue
	MonthlyNeed   decimal.Decimal `json:"monthlyNeed"`
	Overdue       bool            `json:"overdue"`
	Completed     bool            `json:"completed"`
}

// SavingsTarget compares net balance against the savings target derived from income.
type SavingsTarget struct {
	Rate     decimal.Decimal `json:"rate"`
	Target   decimal.Decimal `json:"target"`
	Progress decimal.Decimal `json:"progress"` // Whole percent, clamped to 100
}

// BudgetOverview is the dashboard summary of a user's ledger.
type BudgetOverview struct {
	TotalIncome      decimal.Decimal  `json:"totalIncome"`
	TotalExpenses    decimal.Decimal  `json:"totalExpenses"`
	NetBalance       decimal.Decimal  `json:"netBalance"`
	SavingsRate      decimal.Decimal  `json:"savingsRate"`
	SavingsTarget    SavingsTarget    `json:"savingsTarget"`
	Categories       []CategoryBudget `json:"categories"`
	ActiveGoals      int              `json:"activeGoals"`
	TransactionCount int              `json:"transactionCount"`
}

// CategoryShare is one category's portion of a month's expenses.
type CategoryShare struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// DailySpending is the expense total of one calendar day.
type DailySpending struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeCategoryBreakdown totals a month's income of one category and what was spent from it.
type IncomeCategoryBreakdown struct {
	Category  Category        `json:"category"`
	Total     decimal.Decimal `json:"total"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// MonthlyReport aggregates the transactions of one calendar month.
type MonthlyReport struct {
	Year            int                       `json:"year"`
	Month           time.Month                `json:"month"`
	TotalIncome     decimal.Decimal           `json:"totalIncome"`
	TotalExpenses   decimal.Decimal           `json:"totalExpenses"`
	NetBalance      decimal.Decimal           `json:"netBalance"`
	SavingsRate     decimal.Decimal           `json:"savingsRate"`
	ExpenseShares   []CategoryShare           `json:"expenseShares"`
	DailySpending   []DailySpending           `json:"dailySpending"`
	IncomeBreakdown []IncomeCategoryBreakdown `json:"incomeBreakdown"`
}

// AdmissionDecision is the result of checking an expense against its income source.
type AdmissionDecision struct {
	Admitted        bool            `json:"admitted"`
	SourceID        string          `json:"sourceID,omitempty"`
	Remaining       decimal.Decimal `json:"remaining"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
}
