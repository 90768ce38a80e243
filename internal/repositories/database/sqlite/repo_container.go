package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every SQLite repository onto one database handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db}

	return portsrepo.RepositoryProvider{
		TransactionRepo: newSQLiteTransactionRepository(db),
		SavingsGoalRepo: newSQLiteSavingsGoalRepository(db),
		UserRepo:        newSQLiteUserRepository(db),
		Health:          &base,
	}
}
