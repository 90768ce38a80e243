package accounting

import (
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	daysPerMonth = decimal.NewFromInt(30)
	one          = decimal.NewFromInt(1)
)

const secondsPerDay = 24 * 60 * 60

// GoalProgress derives completion, time left and the monthly amount still needed for a goal.
// daysRemaining is not clamped and goes negative once the target date has passed.
func GoalProgress(goal domain.SavingsGoal, today time.Time) domain.GoalProgress {
	percent := decimal.Min(Percent(goal.CurrentAmount, goal.TargetAmount), hundred)
	remaining := decimal.Max(goal.TargetAmount.Sub(goal.CurrentAmount), decimal.Zero)
	days := DaysBetween(today, goal.TargetDate)

	months := decimal.Max(decimal.NewFromInt(int64(days)).Div(daysPerMonth), one)

	return domain.GoalProgress{
		Goal:          goal,
		Percent:       percent,
		Remaining:     remaining,
		DaysRemaining: days,
		MonthlyNeed:   remaining.Div(months),
		Overdue:       days < 0 && !goal.IsComplete(),
		Completed:     goal.IsComplete(),
	}
}

// DaysBetween counts whole calendar days from a to b, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	from := domain.TruncateToDate(a)
	to := domain.TruncateToDate(b)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// SavingsTargetProgress measures net balance against rate times total income.
// The target never drops below 1 and progress is a whole percent capped at 100.
func SavingsTargetProgress(txs []domain.Transaction, rate decimal.Decimal) domain.SavingsTarget {
	target := decimal.Max(TotalByType(txs, domain.Income).Mul(rate), one)
	progress := decimal.Min(NetBalance(txs).Div(target).Mul(hundred).Round(0), hundred)
	return domain.SavingsTarget{
		Rate:     rate,
		Target:   target,
		Progress: progress,
	}
}
