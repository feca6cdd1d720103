package ledger

import (
	"context"
	"time"
)

// Repository defines the interface for balance event data operations
type Repository interface {
	Insert(ctx context.Context, params RecordParams) (*Event, error)
	ListByBudget(ctx context.Context, budgetID string, from, to *time.Time) ([]Event, error)
	BalanceAsOf(ctx context.Context, budgetID, accountID string, date time.Time) (int64, error)
	HasEventsAsOf(ctx context.Context, budgetID string, date time.Time) (bool, error)
	GetManualAdjust(ctx context.Context, budgetID, accountID string, date time.Time) (*Event, error)
	UpsertManualAdjust(ctx context.Context, params RecordParams) (*Event, error)
	DeleteByTransactionID(ctx context.Context, transactionID string) error
}
