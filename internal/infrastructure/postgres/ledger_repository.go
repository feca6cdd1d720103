package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kopilka/internal/domain/ledger"
)

const dateFormat = "2006-01-02"

// LedgerRepository implements the ledger.Repository interface for PostgreSQL
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new PostgreSQL balance event repository
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Insert records one balance event. The partial unique index on
// transaction_id turns a retried transaction into ErrDuplicateEvent.
func (r *LedgerRepository) Insert(ctx context.Context, params ledger.RecordParams) (*ledger.Event, error) {
	return insertEvent(ctx, r.db, params)
}

// insertEvent is shared with the repositories that write events
// inside their own database transactions
func insertEvent(ctx context.Context, q queryer, params ledger.RecordParams) (*ledger.Event, error) {
	query := `
		INSERT INTO account_balance_events (id, budget_id, user_id, account_id, date, delta, reason, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, budget_id, user_id, account_id, date, delta, reason, transaction_id, created_at
	`

	var event ledger.Event
	var txID sql.NullString
	err := q.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.UserID, params.AccountID,
		params.Date.Format(dateFormat), params.Delta, params.Reason, nullString(params.TransactionID),
	).Scan(&event.ID, &event.BudgetID, &event.UserID, &event.AccountID, &event.Date, &event.Delta, &event.Reason, &txID, &event.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ledger.ErrDuplicateEvent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert balance event: %w", err)
	}
	event.TransactionID = stringPtr(txID)
	return &event, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListByBudget retrieves a budget's events ordered by date, optionally
// bounded by an inclusive date range
func (r *LedgerRepository) ListByBudget(ctx context.Context, budgetID string, from, to *time.Time) ([]ledger.Event, error) {
	query := `
		SELECT id, budget_id, user_id, account_id, date, delta, reason, transaction_id, created_at
		FROM account_balance_events
		WHERE budget_id = $1
	`
	args := []any{budgetID}
	argIndex := 2

	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, from.Format(dateFormat))
		argIndex++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, to.Format(dateFormat))
		argIndex++
	}
	query += " ORDER BY date, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance events: %w", err)
	}
	defer rows.Close()

	var events []ledger.Event
	for rows.Next() {
		var event ledger.Event
		var txID sql.NullString
		if err := rows.Scan(&event.ID, &event.BudgetID, &event.UserID, &event.AccountID, &event.Date, &event.Delta, &event.Reason, &txID, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance event: %w", err)
		}
		event.TransactionID = stringPtr(txID)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance events: %w", err)
	}
	return events, nil
}

// BalanceAsOf sums an account's deltas up to and including the date
func (r *LedgerRepository) BalanceAsOf(ctx context.Context, budgetID, accountID string, date time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM account_balance_events
		WHERE budget_id = $1 AND account_id = $2 AND date <= $3
	`

	var balance int64
	err := r.db.QueryRowContext(ctx, query, budgetID, accountID, date.Format(dateFormat)).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to sum balance: %w", err)
	}
	return balance, nil
}

// HasEventsAsOf reports whether the budget has any event up to the date
func (r *LedgerRepository) HasEventsAsOf(ctx context.Context, budgetID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM account_balance_events
			WHERE budget_id = $1 AND date <= $2
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, budgetID, date.Format(dateFormat)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check balance events: %w", err)
	}
	return exists, nil
}

// GetManualAdjust retrieves the manual adjustment event for an
// account and date, if one exists
func (r *LedgerRepository) GetManualAdjust(ctx context.Context, budgetID, accountID string, date time.Time) (*ledger.Event, error) {
	query := `
		SELECT id, budget_id, user_id, account_id, date, delta, reason, transaction_id, created_at
		FROM account_balance_events
		WHERE budget_id = $1 AND account_id = $2 AND date = $3 AND reason = $4
	`

	var event ledger.Event
	var txID sql.NullString
	err := r.db.QueryRowContext(ctx, query, budgetID, accountID, date.Format(dateFormat), ledger.ReasonManualAdjust).
		Scan(&event.ID, &event.BudgetID, &event.UserID, &event.AccountID, &event.Date, &event.Delta, &event.Reason, &txID, &event.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manual adjust event: %w", err)
	}
	event.TransactionID = stringPtr(txID)
	return &event, nil
}

// UpsertManualAdjust replaces the manual adjustment event for the
// (budget, user, date, account) key
func (r *LedgerRepository) UpsertManualAdjust(ctx context.Context, params ledger.RecordParams) (*ledger.Event, error) {
	query := `
		INSERT INTO account_balance_events (id, budget_id, user_id, account_id, date, delta, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (budget_id, user_id, date, account_id, reason) WHERE reason = 'manual_adjust'
		DO UPDATE SET delta = EXCLUDED.delta
		RETURNING id, budget_id, user_id, account_id, date, delta, reason, transaction_id, created_at
	`

	var event ledger.Event
	var txID sql.NullString
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.UserID, params.AccountID,
		params.Date.Format(dateFormat), params.Delta, ledger.ReasonManualAdjust,
	).Scan(&event.ID, &event.BudgetID, &event.UserID, &event.AccountID, &event.Date, &event.Delta, &event.Reason, &txID, &event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert manual adjust event: %w", err)
	}
	event.TransactionID = stringPtr(txID)
	return &event, nil
}

// DeleteByTransactionID removes the events recorded for a transaction
func (r *LedgerRepository) DeleteByTransactionID(ctx context.Context, transactionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM account_balance_events WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete balance events: %w", err)
	}
	return nil
}
