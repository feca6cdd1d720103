package category

import "context"

// Repository defines the interface for category data operations
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	ListByBudgetID(ctx context.Context, budgetID string) ([]Category, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id string) error
}
