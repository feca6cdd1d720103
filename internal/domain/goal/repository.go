package goal

import "context"

// Repository defines the interface for goal data operations
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Goal, error)
	GetByID(ctx context.Context, id string) (*Goal, error)
	ListByBudget(ctx context.Context, budgetID string) ([]Goal, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Goal, error)
	Delete(ctx context.Context, id string) error
}
