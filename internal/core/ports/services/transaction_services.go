package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations on a user's ledger
type TransactionReaderSvc interface {
	// ListTransactions returns the user's full history, newest first.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsPage returns one page of history and the token of the next page.
	ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// GetTransaction retrieves a single transaction.
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
}

// TransactionWriterSvc defines write operations on a user's ledger
type TransactionWriterSvc interface {
	// CreateTransaction validates and appends a transaction. Scoped expenses must pass the
	// admission check or apperrors.ErrInsufficientBalance is returned.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update and re-runs the admission check for expenses.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction. Deleting an income makes its expenses unscoped.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// AdmissionSvc exposes the admission decision without writing anything.
type AdmissionSvc interface {
	CheckAdmission(ctx context.Context, userID string, amount decimal.Decimal, incomeSourceID *string) (*domain.AdmissionDecision, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	AdmissionSvc
}
