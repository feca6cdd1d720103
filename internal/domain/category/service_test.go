package category

import (
	"context"
	"testing"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CreateFunc         func(ctx context.Context, params CreateParams) (*Category, error)
	GetByIDFunc        func(ctx context.Context, id string) (*Category, error)
	ListByBudgetIDFunc func(ctx context.Context, budgetID string) ([]Category, error)
	UpdateFunc         func(ctx context.Context, id string, params UpdateParams) (*Category, error)
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Category, error) {
	return m.CreateFunc(ctx, params)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Category, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]Category, error) {
	return m.ListByBudgetIDFunc(ctx, budgetID)
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Category, error) {
	return m.UpdateFunc(ctx, id, params)
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

// treeRepo builds a mock backed by a fixed set of categories
func treeRepo(cats map[string]*Category) *MockRepository {
	return &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Category, error) {
			cat, ok := cats[id]
			if !ok {
				return nil, ErrCategoryNotFound
			}
			return cat, nil
		},
		CreateFunc: func(ctx context.Context, params CreateParams) (*Category, error) {
			return &Category{
				ID:       "new",
				BudgetID: params.BudgetID,
				Name:     params.Name,
				Type:     params.Type,
				ParentID: params.ParentID,
			}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, params UpdateParams) (*Category, error) {
			cat := *cats[id]
			if params.Reparent {
				cat.ParentID = params.ParentID
			}
			if params.Name != nil {
				cat.Name = *params.Name
			}
			return &cat, nil
		},
	}
}

func strPtr(s string) *string { return &s }

func TestCreate_ParentTypeMustMatch(t *testing.T) {
	cats := map[string]*Category{
		"parent-income":  {ID: "parent-income", BudgetID: "budget-1", Name: "Доход", Type: TypeIncome},
		"parent-expense": {ID: "parent-expense", BudgetID: "budget-1", Name: "Расход", Type: TypeExpense},
		"parent-foreign": {ID: "parent-foreign", BudgetID: "budget-2", Name: "Чужая", Type: TypeExpense},
	}

	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{
			name:   "expense child under expense parent",
			params: CreateParams{BudgetID: "budget-1", Name: "Продукты", Type: TypeExpense, ParentID: strPtr("parent-expense")},
		},
		{
			name:    "expense child under income parent",
			params:  CreateParams{BudgetID: "budget-1", Name: "Продукты", Type: TypeExpense, ParentID: strPtr("parent-income")},
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "income child under expense parent",
			params:  CreateParams{BudgetID: "budget-1", Name: "Зарплата", Type: TypeIncome, ParentID: strPtr("parent-expense")},
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "parent in another budget",
			params:  CreateParams{BudgetID: "budget-1", Name: "Продукты", Type: TypeExpense, ParentID: strPtr("parent-foreign")},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:    "missing parent",
			params:  CreateParams{BudgetID: "budget-1", Name: "Продукты", Type: TypeExpense, ParentID: strPtr("gone")},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:   "root category needs no parent",
			params: CreateParams{BudgetID: "budget-1", Name: "Транспорт", Type: TypeExpense},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(treeRepo(cats), allowAll())
			_, err := service.Create(context.Background(), "user-1", tt.params)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreate_InvalidType(t *testing.T) {
	service := NewService(&MockRepository{}, allowAll())
	_, err := service.Create(context.Background(), "user-1",
		CreateParams{BudgetID: "budget-1", Name: "X", Type: "savings"})
	if err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestUpdate_RejectsCycles(t *testing.T) {
	// a -> b -> c, root c
	cats := map[string]*Category{
		"a": {ID: "a", BudgetID: "budget-1", Type: TypeExpense, ParentID: strPtr("b")},
		"b": {ID: "b", BudgetID: "budget-1", Type: TypeExpense, ParentID: strPtr("c")},
		"c": {ID: "c", BudgetID: "budget-1", Type: TypeExpense},
	}

	tests := []struct {
		name    string
		id      string
		parent  string
		wantErr error
	}{
		{name: "self parent", id: "a", parent: "a", wantErr: ErrCycle},
		{name: "parent to own descendant", id: "c", parent: "a", wantErr: ErrCycle},
		{name: "parent to sibling chain is fine", id: "a", parent: "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(treeRepo(cats), allowAll())
			_, err := service.Update(context.Background(), "user-1", tt.id,
				UpdateParams{ParentID: strPtr(tt.parent), Reparent: true})

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdate_ReparentKeepsType(t *testing.T) {
	cats := map[string]*Category{
		"exp":    {ID: "exp", BudgetID: "budget-1", Type: TypeExpense},
		"inc":    {ID: "inc", BudgetID: "budget-1", Type: TypeIncome},
		"victim": {ID: "victim", BudgetID: "budget-1", Type: TypeExpense, ParentID: strPtr("exp")},
	}

	service := NewService(treeRepo(cats), allowAll())
	_, err := service.Update(context.Background(), "user-1", "victim",
		UpdateParams{ParentID: strPtr("inc"), Reparent: true})

	if err != ErrTypeMismatch {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}
