package pgsql

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyError("failed to save user", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.findOne(ctx, query, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return r.findOne(ctx, query, username)
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, classifyError("failed to find user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
