package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kopilka/internal/domain/category"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, budget_id, name, type, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, budget_id, name, type, parent_id, created_at
	`

	var cat category.Category
	var parentID sql.NullString
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.Name, params.Type, nullString(params.ParentID),
	).Scan(&cat.ID, &cat.BudgetID, &cat.Name, &cat.Type, &parentID, &cat.CreatedAt)
	if isUniqueViolation(err) {
		return nil, category.ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	cat.ParentID = stringPtr(parentID)
	return &cat, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	query := `
		SELECT id, budget_id, name, type, parent_id, created_at
		FROM categories
		WHERE id = $1
	`

	var cat category.Category
	var parentID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.BudgetID, &cat.Name, &cat.Type, &parentID, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	cat.ParentID = stringPtr(parentID)
	return &cat, nil
}

// ListByBudgetID retrieves all categories in a budget
func (r *CategoryRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]category.Category, error) {
	query := `
		SELECT id, budget_id, name, type, parent_id, created_at
		FROM categories
		WHERE budget_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []category.Category
	for rows.Next() {
		var cat category.Category
		var parentID sql.NullString
		if err := rows.Scan(&cat.ID, &cat.BudgetID, &cat.Name, &cat.Type, &parentID, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.ParentID = stringPtr(parentID)
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// Update applies the given field changes to a category
func (r *CategoryRepository) Update(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error) {
	setClauses := []string{}
	args := []any{id}
	argIndex := 2

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *params.Name)
		argIndex++
	}
	if params.Reparent {
		setClauses = append(setClauses, fmt.Sprintf("parent_id = $%d", argIndex))
		args = append(args, nullString(params.ParentID))
		argIndex++
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE id = $1
		RETURNING id, budget_id, name, type, parent_id, created_at
	`, strings.Join(setClauses, ", "))

	var cat category.Category
	var parentID sql.NullString
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&cat.ID, &cat.BudgetID, &cat.Name, &cat.Type, &parentID, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if isUniqueViolation(err) {
		return nil, category.ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	cat.ParentID = stringPtr(parentID)
	return &cat, nil
}

// Delete removes a category. Children are detached, not deleted.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE categories SET parent_id = NULL WHERE parent_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach children: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return category.ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
