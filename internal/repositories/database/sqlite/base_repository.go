// Package sqlite stores ledgers in a single SQLite file through modernc.org/sqlite.
// Amounts are kept as decimal strings and times as fixed-width UTC text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timestampLayout sorts lexicographically in chronological order for UTC times.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *sql.DB
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, classifyError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return classifyError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. It is a no-op after a successful commit.
func (r *BaseRepository) Rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// Ping checks that the database file is usable.
func (r *BaseRepository) Ping(ctx context.Context) error {
	if err := r.DB.PingContext(ctx); err != nil {
		return classifyError("database ping failed", err)
	}
	return nil
}

func classifyError(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_CHECK:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrValidation)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
			return apperrors.NewAppError(503, msg, fmt.Errorf("%w: %v", apperrors.ErrConnectivity, err))
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		return apperrors.NewAppError(503, msg, fmt.Errorf("%w: %v", apperrors.ErrConnectivity, err))
	}
	return apperrors.NewAppError(500, msg, err)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
