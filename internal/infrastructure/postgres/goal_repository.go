package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kopilka/internal/domain/goal"
)

// GoalRepository implements the goal.Repository interface for PostgreSQL
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new goal
func (r *GoalRepository) Create(ctx context.Context, params goal.CreateParams) (*goal.Goal, error) {
	query := `
		INSERT INTO goals (id, budget_id, user_id, title, target_amount, current_amount, deadline, status)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		RETURNING id, budget_id, user_id, title, target_amount, current_amount, deadline, status, created_at
	`

	return scanGoal(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.UserID, params.Title,
		params.TargetAmount, nullTime(params.Deadline), goal.StatusActive,
	))
}

// GetByID retrieves a goal by its ID
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*goal.Goal, error) {
	query := `
		SELECT id, budget_id, user_id, title, target_amount, current_amount, deadline, status, created_at
		FROM goals
		WHERE id = $1
	`

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	return g, err
}

// ListByBudget retrieves all goals in a budget
func (r *GoalRepository) ListByBudget(ctx context.Context, budgetID string) ([]goal.Goal, error) {
	query := `
		SELECT id, budget_id, user_id, title, target_amount, current_amount, deadline, status, created_at
		FROM goals
		WHERE budget_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// Update modifies a goal's fields, skipping nil params
func (r *GoalRepository) Update(ctx context.Context, id string, params goal.UpdateParams) (*goal.Goal, error) {
	setClauses := []string{}
	args := []any{}
	argIndex := 1

	if params.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, *params.Title)
		argIndex++
	}
	if params.TargetAmount != nil {
		setClauses = append(setClauses, fmt.Sprintf("target_amount = $%d", argIndex))
		args = append(args, *params.TargetAmount)
		argIndex++
	}
	if params.CurrentAmount != nil {
		setClauses = append(setClauses, fmt.Sprintf("current_amount = $%d", argIndex))
		args = append(args, *params.CurrentAmount)
		argIndex++
	}
	if params.Deadline != nil {
		setClauses = append(setClauses, fmt.Sprintf("deadline = $%d", argIndex))
		args = append(args, *params.Deadline)
		argIndex++
	}
	if params.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *params.Status)
		argIndex++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	query := "UPDATE goals SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING id, budget_id, user_id, title, target_amount, current_amount, deadline, status, created_at", argIndex)
	args = append(args, id)

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	return g, err
}

// Delete removes a goal
func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row rowScanner) (*goal.Goal, error) {
	var g goal.Goal
	var deadline sql.NullTime
	err := row.Scan(
		&g.ID, &g.BudgetID, &g.UserID, &g.Title,
		&g.TargetAmount, &g.CurrentAmount, &deadline, &g.Status, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}
	g.Deadline = timePtr(deadline)
	return &g, nil
}
