package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kopilka/internal/domain/dailystate"
)

// DailyStateRepository implements the dailystate.Repository interface for PostgreSQL
type DailyStateRepository struct {
	db *sql.DB
}

// NewDailyStateRepository creates a new PostgreSQL daily state repository
func NewDailyStateRepository(db *sql.DB) *DailyStateRepository {
	return &DailyStateRepository{db: db}
}

// GetByDate retrieves a budget's snapshot row for a date
func (r *DailyStateRepository) GetByDate(ctx context.Context, budgetID string, date time.Time) (*dailystate.State, error) {
	query := `
		SELECT id, budget_id, user_id, date, cash_total, bank_total, debt_cards_total, debt_other_total, created_at
		FROM daily_state
		WHERE budget_id = $1 AND date = $2
	`

	var state dailystate.State
	err := r.db.QueryRowContext(ctx, query, budgetID, date.Format(dateFormat)).Scan(
		&state.ID, &state.BudgetID, &state.UserID, &state.Date,
		&state.CashTotal, &state.BankTotal, &state.DebtCardsTotal, &state.DebtOtherTotal,
		&state.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, dailystate.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily state: %w", err)
	}
	return &state, nil
}

// Upsert writes the snapshot row for (budget, date), replacing all
// four totals when the row already exists
func (r *DailyStateRepository) Upsert(ctx context.Context, params dailystate.UpsertParams) (*dailystate.State, error) {
	query := `
		INSERT INTO daily_state (id, budget_id, user_id, date, cash_total, bank_total, debt_cards_total, debt_other_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (budget_id, date)
		DO UPDATE SET
			user_id = EXCLUDED.user_id,
			cash_total = EXCLUDED.cash_total,
			bank_total = EXCLUDED.bank_total,
			debt_cards_total = EXCLUDED.debt_cards_total,
			debt_other_total = EXCLUDED.debt_other_total
		RETURNING id, budget_id, user_id, date, cash_total, bank_total, debt_cards_total, debt_other_total, created_at
	`

	var state dailystate.State
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.BudgetID, params.UserID, params.Date.Format(dateFormat),
		params.CashTotal, params.BankTotal, params.DebtCardsTotal, params.DebtOtherTotal,
	).Scan(
		&state.ID, &state.BudgetID, &state.UserID, &state.Date,
		&state.CashTotal, &state.BankTotal, &state.DebtCardsTotal, &state.DebtOtherTotal,
		&state.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily state: %w", err)
	}
	return &state, nil
}
