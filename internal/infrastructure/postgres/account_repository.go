package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kopilka/internal/domain/account"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, budget_id, name, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING id, budget_id, name, kind, created_at
	`

	var acc account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.Name, params.Kind,
	).Scan(&acc.ID, &acc.BudgetID, &acc.Name, &acc.Kind, &acc.CreatedAt)
	if isUniqueViolation(err) {
		return nil, account.ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &acc, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `
		SELECT id, budget_id, name, kind, created_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(&acc.ID, &acc.BudgetID, &acc.Name, &acc.Kind, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// ListByBudgetID retrieves all accounts in a budget
func (r *AccountRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]account.Account, error) {
	query := `
		SELECT id, budget_id, name, kind, created_at
		FROM accounts
		WHERE budget_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		var acc account.Account
		if err := rows.Scan(&acc.ID, &acc.BudgetID, &acc.Name, &acc.Kind, &acc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// Rename changes an account's name
func (r *AccountRepository) Rename(ctx context.Context, id, name string) (*account.Account, error) {
	query := `
		UPDATE accounts
		SET name = $2
		WHERE id = $1
		RETURNING id, budget_id, name, kind, created_at
	`

	var acc account.Account
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(&acc.ID, &acc.BudgetID, &acc.Name, &acc.Kind, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if isUniqueViolation(err) {
		return nil, account.ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename account: %w", err)
	}
	return &acc, nil
}

// Delete removes an account
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}
