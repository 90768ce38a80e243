package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type SQLiteSavingsGoalRepository struct {
	BaseRepository
}

func newSQLiteSavingsGoalRepository(db *sql.DB) portsrepo.SavingsGoalRepositoryFacade {
	return &SQLiteSavingsGoalRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*SQLiteSavingsGoalRepository)(nil)

const goalColumns = `goal_id, user_id, name, target_amount, current_amount, target_date, description,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSavingsGoal(row rowScanner) (models.SavingsGoal, error) {
	var (
		m                          models.SavingsGoal
		date, createdAt, updatedAt string
	)
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&date,
		&m.Description,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if m.TargetDate, err = domain.ParseDate(date); err != nil {
		return m, fmt.Errorf("goal %s has invalid target date %q: %w", m.GoalID, date, err)
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return m, fmt.Errorf("goal %s has invalid created_at: %w", m.GoalID, err)
	}
	if m.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return m, fmt.Errorf("goal %s has invalid last_updated_at: %w", m.GoalID, err)
	}
	return m, nil
}

func (r *SQLiteSavingsGoalRepository) FindSavingsGoalByID(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	return r.findOne(ctx, r.DB, userID, goalID)
}

func (r *SQLiteSavingsGoalRepository) findOne(ctx context.Context, q querier, userID, goalID string) (*domain.SavingsGoal, error) {
	row := q.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM savings_goals WHERE goal_id = ? AND user_id = ?`, goalID, userID)
	m, err := scanSavingsGoal(row)
	if err != nil {
		return nil, classifyError("failed to find savings goal "+goalID, err)
	}
	goal := mapping.ToDomainSavingsGoal(m)
	return &goal, nil
}

func (r *SQLiteSavingsGoalRepository) ListSavingsGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = ? ORDER BY target_date ASC, created_at ASC`, userID)
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

func (r *SQLiteSavingsGoalRepository) SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal, contribution *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelSavingsGoal(goal)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO savings_goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.GoalID,
		m.UserID,
		m.Name,
		m.TargetAmount.String(),
		m.CurrentAmount.String(),
		formatDate(m.TargetDate),
		m.Description,
		formatTimestamp(m.CreatedAt),
		m.CreatedBy,
		formatTimestamp(m.LastUpdatedAt),
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
	return r.Commit(tx)
}

func (r *SQLiteSavingsGoalRepository) UpdateSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE savings_goals
		SET name = ?, target_amount = ?, target_date = ?, description = ?,
		    last_updated_at = ?, last_updated_by = ?
		WHERE goal_id = ? AND user_id = ?`,
		m.Name,
		m.TargetAmount.String(),
		formatDate(m.TargetDate),
		m.Description,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.GoalID,
		m.UserID,
	)
	if err != nil {
		return classifyError("failed to update savings goal "+m.GoalID, err)
	}
	return requireAffected(res)
}

func (r *SQLiteSavingsGoalRepository) DeleteSavingsGoal(ctx context.Context, userID, goalID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM savings_goals WHERE goal_id = ? AND user_id = ?`, goalID, userID)
	if err != nil {
		return classifyError("failed to delete savings goal "+goalID, err)
	}
	return requireAffected(res)
}

// ApplyContribution appends the contribution expense and increments the goal balance atomically.
// The sum is computed in Go because amounts are stored as text.
func (r *SQLiteSavingsGoalRepository) ApplyContribution(ctx context.Context, userID, goalID string, amount decimal.Decimal, contribution domain.Transaction) (*domain.SavingsGoal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(tx)

	goal, err := r.findOne(ctx, tx, userID, goalID)
	if err != nil {
		return nil, err
	}
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	goal.LastUpdatedAt = contribution.CreatedAt
	goal.LastUpdatedBy = userID

	res, err := tx.ExecContext(ctx, `
		UPDATE savings_goals SET current_amount = ?, last_updated_at = ?, last_updated_by = ?
		WHERE goal_id = ? AND user_id = ?`,
		goal.CurrentAmount.String(),
		formatTimestamp(goal.LastUpdatedAt),
		userID,
		goalID,
		userID,
	)
	if err != nil {
		return nil, classifyError("failed to apply contribution to goal "+goalID, err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	if err := insertTransaction(ctx, tx, contribution); err != nil {
		return nil, err
	}
	if err := r.Commit(tx); err != nil {
		return nil, err
	}
	goal.LastUpdatedAt = goal.LastUpdatedAt.UTC()
	return goal, nil
}
