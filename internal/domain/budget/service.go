package budget

import (
	"context"
	"errors"
)

// Service contains the business logic for budget operations
type Service struct {
	repo Repository
}

// NewService creates a new budget service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authorize verifies that the budget exists and belongs to the user.
// Returns ErrForbidden otherwise; callers surface it as an authorization failure.
func (s *Service) Authorize(ctx context.Context, userID, budgetID string) error {
	if userID == "" || budgetID == "" {
		return ErrForbidden
	}

	b, err := s.repo.GetByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			return ErrForbidden
		}
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	return nil
}

// ListByUser retrieves all budgets for a user
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Budget, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUserID(ctx, userID)
}

// EnsureDefaults creates the personal and business budgets for a user if
// they do not exist yet, and returns the full list. Safe to call on every
// login.
func (s *Service) EnsureDefaults(ctx context.Context, userID string) ([]*Budget, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kinds := make(map[string]bool, len(existing))
	for _, b := range existing {
		kinds[b.Kind] = true
	}

	defaults := []CreateParams{
		{UserID: userID, Kind: KindPersonal, Name: "Личный"},
		{UserID: userID, Kind: KindBusiness, Name: "Бизнес"},
	}
	created := false
	for _, params := range defaults {
		if kinds[params.Kind] {
			continue
		}
		if _, err := s.repo.Create(ctx, params); err != nil {
			return nil, err
		}
		created = true
	}

	if !created {
		return existing, nil
	}
	return s.repo.ListByUserID(ctx, userID)
}

// Reset wipes all data belonging to a budget after verifying ownership.
// The budget row itself survives.
func (s *Service) Reset(ctx context.Context, userID, budgetID string) error {
	if err := s.Authorize(ctx, userID, budgetID); err != nil {
		return err
	}
	return s.repo.Reset(ctx, budgetID)
}
