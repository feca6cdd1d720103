package account

import "context"

// Repository defines the interface for account data operations
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	ListByBudgetID(ctx context.Context, budgetID string) ([]Account, error)
	Rename(ctx context.Context, id, name string) (*Account, error)
	Delete(ctx context.Context, id string) error
}
