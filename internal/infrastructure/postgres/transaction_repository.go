package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = "id, budget_id, user_id, date, type, kind, amount, account_id, to_account_id, category_id, goal_id, tag, note, created_at"

// CreateWithEvents inserts the transaction row and its balance events
// in one database transaction. Single-leg events get the transaction
// ID so a retry trips the unique index; transfer legs stay unlinked
// since two rows cannot share it.
func (r *TransactionRepository) CreateWithEvents(ctx context.Context, params transaction.CreateParams, events []ledger.RecordParams) (*transaction.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transactions (id, budget_id, user_id, date, type, kind, amount, account_id, to_account_id, category_id, goal_id, tag, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + transactionColumns

	row := tx.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.UserID, params.Date.Format(dateFormat),
		params.Type, params.Kind, params.Amount,
		nullString(params.AccountID), nullString(params.ToAccountID),
		nullString(params.CategoryID), nullString(params.GoalID),
		nullString(params.Tag), params.Note,
	)
	created, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	for _, event := range events {
		if event.Reason != ledger.ReasonTransfer {
			event.TransactionID = &created.ID
		}
		if _, err := insertEvent(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	created, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return created, nil
}

// ListByBudget retrieves a budget's transactions, newest date first,
// narrowed by the optional filter fields
func (r *TransactionRepository) ListByBudget(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE budget_id = $1`
	args := []any{budgetID}
	argIndex := 2

	if filter.Date != nil {
		query += fmt.Sprintf(" AND date = $%d", argIndex)
		args = append(args, filter.Date.Format(dateFormat))
		argIndex++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, filter.From.Format(dateFormat))
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, filter.To.Format(dateFormat))
		argIndex++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, filter.Type)
		argIndex++
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []transaction.Transaction
	for rows.Next() {
		created, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *created)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// DeleteWithEvents removes a transaction and its balance events in
// one database transaction
func (r *TransactionRepository) DeleteWithEvents(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM account_balance_events WHERE transaction_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete balance events: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var accountID, toAccountID, categoryID, goalID, tag, note sql.NullString
	err := row.Scan(
		&t.ID, &t.BudgetID, &t.UserID, &t.Date, &t.Type, &t.Kind, &t.Amount,
		&accountID, &toAccountID, &categoryID, &goalID, &tag, &note, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.AccountID = stringPtr(accountID)
	t.ToAccountID = stringPtr(toAccountID)
	t.CategoryID = stringPtr(categoryID)
	t.GoalID = stringPtr(goalID)
	t.Tag = stringPtr(tag)
	t.Note = note.String
	return &t, nil
}
