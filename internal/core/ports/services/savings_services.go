package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// SavingsReaderSvc defines read operations for savings goals
type SavingsReaderSvc interface {
	ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error)
}

// SavingsWriterSvc defines write operations for savings goals
type SavingsWriterSvc interface {
	// CreateGoal creates a goal, funding it with the optional initial contribution.
	CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)

	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error)

	// DeleteGoal removes a goal. The expenses that funded it stay in the ledger.
	DeleteGoal(ctx context.Context, userID, goalID string) error

	// Contribute records a savings expense and adds its amount to the goal.
	Contribute(ctx context.Context, userID, goalID string, req dto.ContributionRequest) (*domain.SavingsGoal, error)
}

// SavingsSvcFacade combines all savings goal service interfaces
type SavingsSvcFacade interface {
	SavingsReaderSvc
	SavingsWriterSvc
}
