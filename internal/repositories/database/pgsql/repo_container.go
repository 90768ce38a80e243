package pgsql

import (
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		SavingsGoalRepo: newPgxSavingsGoalRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		Health:          &base,
	}
}
