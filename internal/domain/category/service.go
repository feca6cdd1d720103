package category

import (
	"context"
	"fmt"

	"kopilka/internal/domain/budget"
)

// Service handles category business logic
type Service struct {
	repo Repository
	auth budget.Authorizer
}

// NewService creates a new category service
func NewService(repo Repository, auth budget.Authorizer) *Service {
	return &Service{repo: repo, auth: auth}
}

// Create creates a category. When a parent is given it must live in
// the same budget and carry the same type.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, userID, params.BudgetID); err != nil {
		return nil, err
	}

	if params.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *params.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.BudgetID != params.BudgetID {
			return nil, ErrCategoryNotFound
		}
		if parent.Type != params.Type {
			return nil, ErrTypeMismatch
		}
	}

	return s.repo.Create(ctx, params)
}

// GetByID retrieves a category and checks the caller owns its budget
func (s *Service) GetByID(ctx context.Context, userID, id string) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, userID, cat.BudgetID); err != nil {
		return nil, err
	}
	return cat, nil
}

// ListByBudget lists all categories in a budget the user owns
func (s *Service) ListByBudget(ctx context.Context, userID, budgetID string) ([]Category, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudgetID(ctx, budgetID)
}

// Update renames or reparents a category. Reparenting re-runs the
// same-budget, same-type and cycle checks against the new parent.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Category, error) {
	cat, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil && *params.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	if params.Reparent && params.ParentID != nil {
		if *params.ParentID == id {
			return nil, ErrCycle
		}
		parent, err := s.repo.GetByID(ctx, *params.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.BudgetID != cat.BudgetID {
			return nil, ErrCategoryNotFound
		}
		if parent.Type != cat.Type {
			return nil, ErrTypeMismatch
		}
		if err := s.checkNoCycle(ctx, id, parent); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, params)
}

// Delete removes a category the user owns
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// checkNoCycle walks the parent chain from the proposed parent and
// fails if it reaches the node being reparented or exceeds maxDepth.
func (s *Service) checkNoCycle(ctx context.Context, id string, parent *Category) error {
	current := parent
	for depth := 0; depth < maxDepth; depth++ {
		if current.ID == id {
			return ErrCycle
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := s.repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}
	return ErrCycle
}
