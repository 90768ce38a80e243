package services

import (
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Transaction and savings services append expenses to the same ledgers.
	locks := NewLedgerLocks()

	container := &portssvc.ServiceContainer{}
	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionLedgerLocks(locks),
	)
	container.Savings = NewSavingsService(
		repos.SavingsGoalRepo,
		repos.TransactionRepo,
		WithSavingsLedgerLocks(locks),
	)
	container.Reporting = NewReportingService(
		repos.TransactionRepo,
		repos.SavingsGoalRepo,
		WithBudgetPolicy(cfg.BudgetPolicy),
	)
	container.Health = repos.Health

	return container
}
