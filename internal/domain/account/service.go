package account

import (
	"context"
	"fmt"

	"kopilka/internal/domain/budget"
)

// Service handles account business logic
type Service struct {
	repo Repository
	auth budget.Authorizer
}

// NewService creates a new account service
func NewService(repo Repository, auth budget.Authorizer) *Service {
	return &Service{repo: repo, auth: auth}
}

// Create creates an account in a budget the user owns
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, userID, params.BudgetID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetByID retrieves an account and checks the caller owns its budget
func (s *Service) GetByID(ctx context.Context, userID, id string) (*Account, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, userID, acc.BudgetID); err != nil {
		return nil, err
	}
	return acc, nil
}

// ListByBudget lists all accounts in a budget the user owns
func (s *Service) ListByBudget(ctx context.Context, userID, budgetID string) ([]Account, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudgetID(ctx, budgetID)
}

// Exists reports whether a budget the user owns has any accounts yet
func (s *Service) Exists(ctx context.Context, userID, budgetID string) (bool, error) {
	accounts, err := s.ListByBudget(ctx, userID, budgetID)
	if err != nil {
		return false, err
	}
	return len(accounts) > 0, nil
}

// Rename changes an account's display name. The new name must stay
// unique within the budget.
func (s *Service) Rename(ctx context.Context, userID, id, name string) (*Account, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.repo.Rename(ctx, id, name)
}

// Delete removes an account the user owns
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
