package budget

import "context"

// Repository defines the interface for budget data access.
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new budget
	Create(ctx context.Context, params CreateParams) (*Budget, error)

	// GetByID retrieves a budget by its ID
	GetByID(ctx context.Context, id string) (*Budget, error)

	// ListByUserID retrieves all budgets for a user, oldest first
	ListByUserID(ctx context.Context, userID string) ([]*Budget, error)

	// Reset deletes all dependent data (accounts, categories, transactions,
	// daily state, balance events, debts, goals) for a budget in one transaction
	Reset(ctx context.Context, id string) error
}

// Authorizer verifies that a budget belongs to a user. Every budget-scoped
// service gates its operations through this check.
type Authorizer interface {
	Authorize(ctx context.Context, userID, budgetID string) error
}
