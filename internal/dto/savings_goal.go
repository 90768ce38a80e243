package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/shopspring/decimal"
)

// ContributionRequest moves money from an optional income source into a goal.
type ContributionRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required,decimal_gt0" swaggertype:"string"`
	IncomeSourceID *string         `json:"incomeSourceID"`
}

// CreateSavingsGoalRequest defines the data needed to create a goal.
type CreateSavingsGoalRequest struct {
	Name                string               `json:"name" binding:"required,max=120"`
	TargetAmount        decimal.Decimal      `json:"targetAmount" binding:"required,decimal_gt0" swaggertype:"string"`
	CurrentAmount       decimal.Decimal      `json:"currentAmount" swaggertype:"string" example:"150.00"` // Already saved, defaults to 0
	TargetDate          string               `json:"targetDate" binding:"required,datetime=2006-01-02"`
	Description         string               `json:"description" binding:"max=500"`
	InitialContribution *ContributionRequest `json:"initialContribution"`
}

// UpdateSavingsGoalRequest defines the fields that may change on a goal.
type UpdateSavingsGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=120"`
	TargetAmount *decimal.Decimal `json:"targetAmount" swaggertype:"string"`
	TargetDate   *string          `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
}

// SavingsGoalResponse defines the data returned for a goal.
type SavingsGoalResponse struct {
	GoalID                 string          `json:"goalID"`
	Name                   string          `json:"name"`
	TargetAmount           decimal.Decimal `json:"targetAmount" swaggertype:"string"`
	TargetAmountFormatted  string          `json:"targetAmountFormatted"`
	CurrentAmount          decimal.Decimal `json:"currentAmount" swaggertype:"string"`
	CurrentAmountFormatted string          `json:"currentAmountFormatted"`
	TargetDate             string          `json:"targetDate"`
	Description            string          `json:"description"`
	CreatedAt              time.Time       `json:"createdAt"`
	LastUpdatedAt          time.Time       `json:"lastUpdatedAt"`
}

// GoalProgressResponse is a goal with its derived progress.
type GoalProgressResponse struct {
	Goal                 SavingsGoalResponse `json:"goal"`
	Percent              decimal.Decimal     `json:"percent" swaggertype:"string"`
	PercentFormatted     string              `json:"percentFormatted"`
	ProgressWidth        decimal.Decimal     `json:"progressWidth" swaggertype:"string"`
	Remaining            decimal.Decimal     `json:"remaining" swaggertype:"string"`
	DaysRemaining        int                 `json:"daysRemaining"`
	MonthlyNeed          decimal.Decimal     `json:"monthlyNeed" swaggertype:"string"`
	MonthlyNeedFormatted string              `json:"monthlyNeedFormatted"`
	Overdue              bool                `json:"overdue"`
	Completed            bool                `json:"completed"`
}

// ToSavingsGoalResponse converts a domain.SavingsGoal.
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		GoalID:                 g.GoalID,
		Name:                   g.Name,
		TargetAmount:           g.TargetAmount,
		TargetAmountFormatted:  utils.FormatCurrency(g.TargetAmount),
		CurrentAmount:          g.CurrentAmount,
		CurrentAmountFormatted: utils.FormatCurrency(g.CurrentAmount),
		TargetDate:             g.TargetDate.Format(domain.DateLayout),
		Description:            g.Description,
		CreatedAt:              g.CreatedAt,
		LastUpdatedAt:          g.LastUpdatedAt,
	}
}

// ToSavingsGoalResponses converts a slice of goals.
func ToSavingsGoalResponses(goals []domain.SavingsGoal) []SavingsGoalResponse {
	res := make([]SavingsGoalResponse, len(goals))
	for i := range goals {
		res[i] = ToSavingsGoalResponse(&goals[i])
	}
	return res
}

// ToGoalProgressResponses converts derived goal progress.
func ToGoalProgressResponses(progress []domain.GoalProgress) []GoalProgressResponse {
	res := make([]GoalProgressResponse, len(progress))
	for i, p := range progress {
		res[i] = GoalProgressResponse{
			Goal:                 ToSavingsGoalResponse(&p.Goal),
			Percent:              p.Percent,
			PercentFormatted:     utils.FormatPercent(p.Percent),
			ProgressWidth:        utils.ProgressWidth(p.Percent),
			Remaining:            p.Remaining,
			DaysRemaining:        p.DaysRemaining,
			MonthlyNeed:          p.MonthlyNeed,
			MonthlyNeedFormatted: utils.FormatCurrency(p.MonthlyNeed),
			Overdue:              p.Overdue,
			Completed:            p.Completed,
		}
	}
	return res
}
