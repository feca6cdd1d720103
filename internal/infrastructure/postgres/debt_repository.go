package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kopilka/internal/domain/debt"
	"kopilka/internal/domain/ledger"
)

// DebtRepository implements the debt.Repository interface for PostgreSQL
type DebtRepository struct {
	db *sql.DB
}

// NewDebtRepository creates a new PostgreSQL debt repository
func NewDebtRepository(db *sql.DB) *DebtRepository {
	return &DebtRepository{db: db}
}

// Create inserts a new debt record
func (r *DebtRepository) Create(ctx context.Context, params debt.CreateParams) (*debt.DebtOther, error) {
	query := `
		INSERT INTO debts_other (id, budget_id, user_id, name, amount, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, budget_id, user_id, name, amount, note, created_at
	`

	var d debt.DebtOther
	var note sql.NullString
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.UserID, params.Name, params.Amount, params.Note,
	).Scan(&d.ID, &d.BudgetID, &d.UserID, &d.Name, &d.Amount, &note, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	d.Note = note.String
	return &d, nil
}

// GetByID retrieves a debt record by its ID
func (r *DebtRepository) GetByID(ctx context.Context, id string) (*debt.DebtOther, error) {
	query := `
		SELECT id, budget_id, user_id, name, amount, note, created_at
		FROM debts_other
		WHERE id = $1
	`

	var d debt.DebtOther
	var note sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.BudgetID, &d.UserID, &d.Name, &d.Amount, &note, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	d.Note = note.String
	return &d, nil
}

// ListByBudget retrieves all debt records in a budget
func (r *DebtRepository) ListByBudget(ctx context.Context, budgetID string) ([]debt.DebtOther, error) {
	query := `
		SELECT id, budget_id, user_id, name, amount, note, created_at
		FROM debts_other
		WHERE budget_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []debt.DebtOther
	for rows.Next() {
		var d debt.DebtOther
		var note sql.NullString
		if err := rows.Scan(&d.ID, &d.BudgetID, &d.UserID, &d.Name, &d.Amount, &note, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		d.Note = note.String
		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

// Sum returns the total owed across a budget's debt records
func (r *DebtRepository) Sum(ctx context.Context, budgetID string) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM debts_other WHERE budget_id = $1`, budgetID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum debts: %w", err)
	}
	return sum, nil
}

// Delete removes a debt record
func (r *DebtRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts_other WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return debt.ErrDebtNotFound
	}
	return nil
}

// Apply writes the asset-side balance event and the snapshot debt
// fields in one database transaction. The snapshot row is locked
// first so concurrent applies on the same day serialize. The event
// folds into any existing same-day manual adjustment to keep the
// one-adjustment-per-account invariant.
func (r *DebtRepository) Apply(ctx context.Context, change debt.ApplyChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(
		ctx,
		`SELECT id FROM daily_state WHERE budget_id = $1 AND date = $2 FOR UPDATE`,
		change.BudgetID, change.Date.Format(dateFormat),
	).Scan(&lockedID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to lock daily state: %w", err)
	}

	eventQuery := `
		INSERT INTO account_balance_events (id, budget_id, user_id, account_id, date, delta, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (budget_id, user_id, date, account_id, reason) WHERE reason = 'manual_adjust'
		DO UPDATE SET delta = account_balance_events.delta + EXCLUDED.delta
	`
	_, err = tx.ExecContext(
		ctx, eventQuery,
		uuid.New().String(), change.BudgetID, change.UserID, change.AccountID,
		change.Date.Format(dateFormat), change.AssetDelta, ledger.ReasonManualAdjust,
	)
	if err != nil {
		return fmt.Errorf("failed to insert balance event: %w", err)
	}

	stateQuery := `
		INSERT INTO daily_state (id, budget_id, user_id, date, cash_total, bank_total, debt_cards_total, debt_other_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (budget_id, date)
		DO UPDATE SET
			cash_total = EXCLUDED.cash_total,
			bank_total = EXCLUDED.bank_total,
			debt_cards_total = EXCLUDED.debt_cards_total,
			debt_other_total = EXCLUDED.debt_other_total
	`
	_, err = tx.ExecContext(
		ctx, stateQuery,
		uuid.New().String(), change.BudgetID, change.UserID, change.Date.Format(dateFormat),
		change.CashTotal, change.BankTotal, change.DebtCardsTotal, change.DebtOtherTotal,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
