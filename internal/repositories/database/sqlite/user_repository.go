package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
)

type SQLiteUserRepository struct {
	BaseRepository
}

func newSQLiteUserRepository(db *sql.DB) portsrepo.UserRepositoryFacade {
	return &SQLiteUserRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UserRepositoryFacade = (*SQLiteUserRepository)(nil)

const userColumns = `user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *SQLiteUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		formatTimestamp(m.CreatedAt),
		m.CreatedBy,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyError("failed to save user", err)
	}
	return nil
}

func (r *SQLiteUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
}

func (r *SQLiteUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *SQLiteUserRepository) findOne(ctx context.Context, query, arg string) (*domain.User, error) {
	var (
		m                    models.User
		createdAt, updatedAt string
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, classifyError("failed to find user", err)
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at of user %s: %w", m.UserID, err)
	}
	if m.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse last_updated_at of user %s: %w", m.UserID, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
