package pgsql

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxSavingsGoalRepository struct {
	BaseRepository
}

func newPgxSavingsGoalRepository(pool *pgxpool.Pool) portsrepo.SavingsGoalRepositoryFacade {
	return &PgxSavingsGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*PgxSavingsGoalRepository)(nil)

const goalColumns = `goal_id, user_id, name, target_amount, current_amount, target_date, description,
		created_at, created_by, last_updated_at, last_updated_by`

func scanSavingsGoal(row pgx.Row) (models.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.TargetDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSavingsGoalRepository) FindSavingsGoalByID(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE goal_id = $1 AND user_id = $2;`
	m, err := scanSavingsGoal(r.Pool.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		return nil, classifyError("failed to find savings goal "+goalID, err)
	}
	goal := mapping.ToDomainSavingsGoal(m)
	return &goal, nil
}

func (r *PgxSavingsGoalRepository) ListSavingsGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = $1 ORDER BY target_date ASC, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, classifyError("failed to query savings goals", err)
	}
	defer rows.Close()

	out := make([]models.SavingsGoal, 0)
	for rows.Next() {
		m, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, classifyError("failed to scan savings goal row", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("error iterating savings goal rows", err)
	}
	return mapping.ToDomainSavingsGoalSlice(out), nil
}

// SaveSavingsGoal inserts the goal and, when given, the expense that funds its opening balance.
func (r *PgxSavingsGoalRepository) SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal, contribution *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSavingsGoal(goal)
	query := `
		INSERT INTO savings_goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.GoalID,
		m.UserID,
		m.Name,
		m.TargetAmount,
		m.CurrentAmount,
		m.TargetDate,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyError("failed to insert savings goal "+m.GoalID, err)
	}

	if contribution != nil {
		if err := insertTransaction(ctx, tx, *contribution); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxSavingsGoalRepository) UpdateSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	query := `
		UPDATE savings_goals
		SET name = $1, target_amount = $2, target_date = $3, description = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE goal_id = $7 AND user_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.TargetAmount,
		m.TargetDate,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.GoalID,
		m.UserID,
	)
	if err != nil {
		return classifyError("failed to update savings goal "+m.GoalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSavingsGoal removes the goal only. Expenses that funded it stay in the ledger.
func (r *PgxSavingsGoalRepository) DeleteSavingsGoal(ctx context.Context, userID, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM savings_goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return classifyError("failed to delete savings goal "+goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyContribution appends the contribution expense and increments the goal balance atomically.
func (r *PgxSavingsGoalRepository) ApplyContribution(ctx context.Context, userID, goalID string, amount decimal.Decimal, contribution domain.Transaction) (*domain.SavingsGoal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $1, last_updated_at = $2, last_updated_by = $3
		WHERE goal_id = $4 AND user_id = $5
		RETURNING ` + goalColumns + `;
	`
	m, err := scanSavingsGoal(tx.QueryRow(ctx, query, amount, contribution.CreatedAt, userID, goalID, userID))
	if err != nil {
		return nil, classifyError("failed to apply contribution to goal "+goalID, err)
	}

	if err := insertTransaction(ctx, tx, contribution); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	goal := mapping.ToDomainSavingsGoal(m)
	return &goal, nil
}
