package mapping

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/models"
)

// ToModelSavingsGoal converts a domain SavingsGoal to a model SavingsGoal
func ToModelSavingsGoal(d domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		GoalID:        d.GoalID,
		UserID:        d.UserID,
		Name:          d.Name,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		TargetDate:    domain.TruncateToDate(d.TargetDate),
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsGoal converts a model SavingsGoal to a domain SavingsGoal
func ToDomainSavingsGoal(m models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    domain.TruncateToDate(m.TargetDate),
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSavingsGoalSlice converts a slice of model SavingsGoals to a slice of domain SavingsGoals
func ToDomainSavingsGoalSlice(ms []models.SavingsGoal) []domain.SavingsGoal {
	ds := make([]domain.SavingsGoal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSavingsGoal(m)
	}
	return ds
}
