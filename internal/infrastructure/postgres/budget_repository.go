package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kopilka/internal/domain/budget"
)

// BudgetRepository implements the budget.Repository interface for PostgreSQL
type BudgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new PostgreSQL budget repository
func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create creates a new budget
func (r *BudgetRepository) Create(ctx context.Context, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, kind, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, kind, name, created_at
	`

	var b budget.Budget
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.UserID, params.Kind, params.Name,
	).Scan(&b.ID, &b.UserID, &b.Kind, &b.Name, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return &b, nil
}

// GetByID retrieves a budget by ID
func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*budget.Budget, error) {
	query := `
		SELECT id, user_id, kind, name, created_at
		FROM budgets
		WHERE id = $1
	`

	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.UserID, &b.Kind, &b.Name, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, budget.ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &b, nil
}

// ListByUserID retrieves all budgets belonging to a user
func (r *BudgetRepository) ListByUserID(ctx context.Context, userID string) ([]*budget.Budget, error) {
	query := `
		SELECT id, user_id, kind, name, created_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		var b budget.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Kind, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// Reset wipes all budget data while keeping the budget itself. Every
// dependent table is cleared in one database transaction.
func (r *BudgetRepository) Reset(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		"account_balance_events",
		"transactions",
		"daily_state",
		"debts_other",
		"goals",
		"categories",
		"accounts",
	}
	for _, table := range tables {
		query := fmt.Sprintf(`DELETE FROM %s WHERE budget_id = $1`, table)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
