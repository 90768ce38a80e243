package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/SscSPs/finance_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, amount, transaction_type, category, transaction_date,
		description, recurring, recurring_period, income_source_id,
		created_at, created_by, last_updated_at, last_updated_by`

// History order: newest date first, then newest insert, then id.
const transactionOrder = `ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Amount,
		&m.TransactionType,
		&m.Category,
		&m.TransactionDate,
		&m.Description,
		&m.Recurring,
		&m.RecurringPeriod,
		&m.IncomeSourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertTransaction(ctx context.Context, q execer, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := q.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Amount,
		m.TransactionType,
		m.Category,
		m.TransactionDate,
		m.Description,
		m.Recurring,
		m.RecurringPeriod,
		m.IncomeSourceID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyError("failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, txn)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		return nil, classifyError("failed to find transaction "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ` + transactionOrder + `;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, classifyError("failed to query transactions", err)
	}
	defer rows.Close()

	out := make([]models.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, classifyError("failed to scan transaction row", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(out), nil
}

// ListTransactionsPage returns one page of history and the token for the next page, if any.
func (r *PgxTransactionRepository) ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	args := []any{userID}
	filterClause := `WHERE user_id = $1`
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		filterClause += ` AND (transaction_date, created_at, transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions ` + filterClause + ` ` + transactionOrder +
		` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, classifyError("failed to query transaction page", err)
	}
	defer rows.Close()

	page := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, classifyError("failed to scan transaction row", err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, classifyError("error iterating transaction rows", err)
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(pagination.Cursor{
			Date:      last.TransactionDate,
			CreatedAt: last.CreatedAt,
			ID:        last.TransactionID,
		})
		next = &token
	}
	return mapping.ToDomainTransactionSlice(page), next, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $1, category = $2, transaction_date = $3, description = $4,
		    recurring = $5, recurring_period = $6, income_source_id = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $10 AND user_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Amount,
		m.Category,
		m.TransactionDate,
		m.Description,
		m.Recurring,
		m.RecurringPeriod,
		m.IncomeSourceID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
		m.UserID,
	)
	if err != nil {
		return classifyError("failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction. Expenses funded by it become unscoped in the same
// database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	unlink := `
		UPDATE transactions
		SET income_source_id = NULL, last_updated_at = NOW(), last_updated_by = $1
		WHERE user_id = $1 AND income_source_id = $2;
	`
	if _, err := tx.Exec(ctx, unlink, userID, transactionID); err != nil {
		return classifyError("failed to unlink expenses of "+transactionID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return classifyError("failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
