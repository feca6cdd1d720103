package debt

import "context"

// Repository defines the interface for debt data operations. Apply
// writes the snapshot debt fields and the account balance event in
// one database transaction so no partial update is ever visible.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*DebtOther, error)
	GetByID(ctx context.Context, id string) (*DebtOther, error)
	ListByBudget(ctx context.Context, budgetID string) ([]DebtOther, error)
	Sum(ctx context.Context, budgetID string) (int64, error)
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, change ApplyChange) error
}
