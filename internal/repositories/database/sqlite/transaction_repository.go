package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/SscSPs/finance_tracker_app/internal/utils/pagination"
)

type SQLiteTransactionRepository struct {
	BaseRepository
}

func newSQLiteTransactionRepository(db *sql.DB) portsrepo.TransactionRepositoryFacade {
	return &SQLiteTransactionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, amount, transaction_type, category, transaction_date,
	description, recurring, recurring_period, income_source_id,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionOrder = `ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		m                          models.Transaction
		date, createdAt, updatedAt string
	)
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Amount,
		&m.TransactionType,
		&m.Category,
		&date,
		&m.Description,
		&m.Recurring,
		&m.RecurringPeriod,
		&m.IncomeSourceID,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if m.TransactionDate, err = domain.ParseDate(date); err != nil {
		return m, fmt.Errorf("transaction %s has invalid date %q: %w", m.TransactionID, date, err)
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return m, fmt.Errorf("transaction %s has invalid created_at: %w", m.TransactionID, err)
	}
	if m.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return m, fmt.Errorf("transaction %s has invalid last_updated_at: %w", m.TransactionID, err)
	}
	return m, nil
}

func insertTransaction(ctx context.Context, q querier, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := q.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID,
		m.UserID,
		m.Amount.String(),
		m.TransactionType,
		m.Category,
		formatDate(m.TransactionDate),
		m.Description,
		m.Recurring,
		m.RecurringPeriod,
		m.IncomeSourceID,
		formatTimestamp(m.CreatedAt),
		m.CreatedBy,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyError("failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.DB, txn)
}

func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = ? AND user_id = ?`,
		transactionID, userID)
	m, err := scanTransaction(row)
	if err != nil {
		return nil, classifyError("failed to find transaction "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *SQLiteTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return r.query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? `+transactionOrder, userID)
}

func (r *SQLiteTransactionRepository) ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{userID}
	filter := `WHERE user_id = ?`
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		filter += ` AND (transaction_date, created_at, transaction_id) < (?, ?, ?)`
		args = append(args, formatDate(cursor.Date), formatTimestamp(cursor.CreatedAt), cursor.ID)
	}
	args = append(args, fetchLimit)

	page, err := r.query(ctx, `SELECT `+transactionColumns+` FROM transactions `+filter+` `+transactionOrder+` LIMIT ?`, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		next = &token
	}
	return page, next, nil
}

func (r *SQLiteTransactionRepository) query(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
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

func (r *SQLiteTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, category = ?, transaction_date = ?, description = ?,
		    recurring = ?, recurring_period = ?, income_source_id = ?,
		    last_updated_at = ?, last_updated_by = ?
		WHERE transaction_id = ? AND user_id = ?`,
		m.Amount.String(),
		m.Category,
		formatDate(m.TransactionDate),
		m.Description,
		m.Recurring,
		m.RecurringPeriod,
		m.IncomeSourceID,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.TransactionID,
		m.UserID,
	)
	if err != nil {
		return classifyError("failed to update transaction "+m.TransactionID, err)
	}
	return requireAffected(res)
}

// DeleteTransaction removes a transaction and unlinks the expenses it funded in one database transaction.
func (r *SQLiteTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if _, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET income_source_id = NULL, last_updated_at = ?, last_updated_by = ?
		WHERE user_id = ? AND income_source_id = ?`,
		formatTimestamp(time.Now()), userID, userID, transactionID,
	); err != nil {
		return classifyError("failed to unlink expenses of "+transactionID, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = ? AND user_id = ?`, transactionID, userID)
	if err != nil {
		return classifyError("failed to delete transaction "+transactionID, err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return r.Commit(tx)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return classifyError("failed to read affected rows", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
