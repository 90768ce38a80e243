package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser returns the full snapshot of a user's transactions,
	// newest date first, then newest created, then by ID.
	ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsPage retrieves one page of a user's history using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transactions
type TransactionWriter interface {
	// SaveTransaction appends a single transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction replaces the mutable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction. Expenses linked to it become unscoped
	// within the same storage transaction.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
