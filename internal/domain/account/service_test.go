package account

import (
	"context"
	"testing"
	"time"

	"kopilka/internal/domain/budget"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CreateFunc         func(ctx context.Context, params CreateParams) (*Account, error)
	GetByIDFunc        func(ctx context.Context, id string) (*Account, error)
	ListByBudgetIDFunc func(ctx context.Context, budgetID string) ([]Account, error)
	RenameFunc         func(ctx context.Context, id, name string) (*Account, error)
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Account, error) {
	return m.CreateFunc(ctx, params)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]Account, error) {
	return m.ListByBudgetIDFunc(ctx, budgetID)
}

func (m *MockRepository) Rename(ctx context.Context, id, name string) (*Account, error) {
	return m.RenameFunc(ctx, id, name)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// MockAuthorizer implements budget.Authorizer for testing
type MockAuthorizer struct {
	AuthorizeFunc func(ctx context.Context, userID, budgetID string) error
}

func (m *MockAuthorizer) Authorize(ctx context.Context, userID, budgetID string) error {
	return m.AuthorizeFunc(ctx, userID, budgetID)
}

func allowAll() *MockAuthorizer {
	return &MockAuthorizer{
		AuthorizeFunc: func(ctx context.Context, userID, budgetID string) error {
			return nil
		},
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr bool
	}{
		{
			name:   "valid cash account",
			params: CreateParams{BudgetID: "budget-1", Name: "Кошелёк", Kind: KindCash},
		},
		{
			name:   "valid bank account",
			params: CreateParams{BudgetID: "budget-1", Name: "Карта", Kind: KindBank},
		},
		{
			name:    "missing name",
			params:  CreateParams{BudgetID: "budget-1", Kind: KindCash},
			wantErr: true,
		},
		{
			name:    "missing budget ID",
			params:  CreateParams{Name: "Кошелёк", Kind: KindCash},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			params:  CreateParams{BudgetID: "budget-1", Name: "Брокер", Kind: "broker"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{
				CreateFunc: func(ctx context.Context, params CreateParams) (*Account, error) {
					return &Account{
						ID:        "account-1",
						BudgetID:  params.BudgetID,
						Name:      params.Name,
						Kind:      params.Kind,
						CreatedAt: time.Now(),
					}, nil
				},
			}

			service := NewService(mockRepo, allowAll())
			acc, err := service.Create(context.Background(), "user-1", tt.params)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if acc.Kind != tt.params.Kind {
				t.Errorf("expected kind %q, got %q", tt.params.Kind, acc.Kind)
			}
		})
	}
}

func TestCreate_RequiresOwnership(t *testing.T) {
	auth := &MockAuthorizer{
		AuthorizeFunc: func(ctx context.Context, userID, budgetID string) error {
			return budget.ErrForbidden
		},
	}
	repoCalled := false
	mockRepo := &MockRepository{
		CreateFunc: func(ctx context.Context, params CreateParams) (*Account, error) {
			repoCalled = true
			return nil, nil
		},
	}

	service := NewService(mockRepo, auth)
	_, err := service.Create(context.Background(), "intruder",
		CreateParams{BudgetID: "budget-1", Name: "Кошелёк", Kind: KindCash})

	if err != budget.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if repoCalled {
		t.Error("repository should not be called for a foreign budget")
	}
}

func TestGetByID_ChecksBudgetOwnership(t *testing.T) {
	mockRepo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Account, error) {
			return &Account{ID: id, BudgetID: "budget-2", Name: "Карта", Kind: KindBank}, nil
		},
	}
	auth := &MockAuthorizer{
		AuthorizeFunc: func(ctx context.Context, userID, budgetID string) error {
			if budgetID != "budget-1" {
				return budget.ErrForbidden
			}
			return nil
		},
	}

	service := NewService(mockRepo, auth)
	_, err := service.GetByID(context.Background(), "user-1", "account-1")

	if err != budget.ErrForbidden {
		t.Errorf("expected ErrForbidden for account in foreign budget, got %v", err)
	}
}

func TestRename_EmptyName(t *testing.T) {
	service := NewService(&MockRepository{}, allowAll())
	_, err := service.Rename(context.Background(), "user-1", "account-1", "")
	if err == nil {
		t.Error("expected error for empty name")
	}
}
