package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, classifyError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return classifyError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. It is a no-op after a successful commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// Ping checks that the database answers.
func (r *BaseRepository) Ping(ctx context.Context) error {
	if err := r.Pool.Ping(ctx); err != nil {
		return classifyError("database ping failed", err)
	}
	return nil
}

// classifyError maps driver errors onto the application's error taxonomy.
func classifyError(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrValidation, pgErr.ConstraintName)
		}
		return apperrors.NewAppError(500, msg, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return apperrors.NewAppError(503, msg, fmt.Errorf("%w: %v", apperrors.ErrConnectivity, err))
	}
	return apperrors.NewAppError(500, msg, err)
}
