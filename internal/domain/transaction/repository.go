package transaction

import (
	"context"

	"kopilka/internal/domain/ledger"
)

// Repository defines the interface for transaction data operations.
// CreateWithEvents writes the transaction and its balance events in
// one database transaction so neither is visible without the other.
type Repository interface {
	CreateWithEvents(ctx context.Context, params CreateParams, events []ledger.RecordParams) (*Transaction, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	ListByBudget(ctx context.Context, budgetID string, filter ListFilter) ([]Transaction, error)
	DeleteWithEvents(ctx context.Context, id string) error
}
