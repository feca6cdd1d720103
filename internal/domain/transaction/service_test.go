package transaction

import (
	"context"
	"testing"
	"time"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/category"
	"kopilka/internal/domain/ledger"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CreateWithEventsFunc func(ctx context.Context, params CreateParams, events []ledger.RecordParams) (*Transaction, error)
	GetByIDFunc          func(ctx context.Context, id string) (*Transaction, error)
	ListByBudgetFunc     func(ctx context.Context, budgetID string, filter ListFilter) ([]Transaction, error)
	DeleteWithEventsFunc func(ctx context.Context, id string) error
}

func (m *MockRepository) CreateWithEvents(ctx context.Context, params CreateParams, events []ledger.RecordParams) (*Transaction, error) {
	return m.CreateWithEventsFunc(ctx, params, events)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockRepository) ListByBudget(ctx context.Context, budgetID string, filter ListFilter) ([]Transaction, error) {
	return m.ListByBudgetFunc(ctx, budgetID, filter)
}

func (m *MockRepository) DeleteWithEvents(ctx context.Context, id string) error {
	return m.DeleteWithEventsFunc(ctx, id)
}

// MockAccountReader implements AccountReader for testing
type MockAccountReader struct {
	GetByIDFunc func(ctx context.Context, id string) (*account.Account, error)
}

func (m *MockAccountReader) GetByID(ctx context.Context, id string) (*account.Account, error) {
	return m.GetByIDFunc(ctx, id)
}

// MockCategoryReader implements CategoryReader for testing
type MockCategoryReader struct {
	GetByIDFunc func(ctx context.Context, id string) (*category.Category, error)
}

func (m *MockCategoryReader) GetByID(ctx context.Context, id string) (*category.Category, error) {
	return m.GetByIDFunc(ctx, id)
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

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

// fixtureService wires a service over in-budget accounts and
// categories with known types
func fixtureService(captured *[]ledger.RecordParams) *Service {
	accounts := map[string]*account.Account{
		"acc-1": {ID: "acc-1", BudgetID: "budget-1", Kind: account.KindCash},
		"acc-2": {ID: "acc-2", BudgetID: "budget-1", Kind: account.KindBank},
		"acc-x": {ID: "acc-x", BudgetID: "budget-2", Kind: account.KindBank},
	}
	categories := map[string]*category.Category{
		"cat-income":  {ID: "cat-income", BudgetID: "budget-1", Type: category.TypeIncome},
		"cat-expense": {ID: "cat-expense", BudgetID: "budget-1", Type: category.TypeExpense},
		"cat-foreign": {ID: "cat-foreign", BudgetID: "budget-2", Type: category.TypeExpense},
	}

	repo := &MockRepository{
		CreateWithEventsFunc: func(ctx context.Context, params CreateParams, events []ledger.RecordParams) (*Transaction, error) {
			if captured != nil {
				*captured = events
			}
			return &Transaction{
				ID:       "tx-1",
				BudgetID: params.BudgetID,
				UserID:   params.UserID,
				Type:     params.Type,
				Kind:     params.Kind,
				Amount:   params.Amount,
			}, nil
		},
	}
	accountReader := &MockAccountReader{
		GetByIDFunc: func(ctx context.Context, id string) (*account.Account, error) {
			acc, ok := accounts[id]
			if !ok {
				return nil, account.ErrAccountNotFound
			}
			return acc, nil
		},
	}
	categoryReader := &MockCategoryReader{
		GetByIDFunc: func(ctx context.Context, id string) (*category.Category, error) {
			cat, ok := categories[id]
			if !ok {
				return nil, category.ErrCategoryNotFound
			}
			return cat, nil
		},
	}
	return NewService(repo, accountReader, categoryReader, allowAll())
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{
			name: "income with matching category",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeIncome, Amount: 1000,
				AccountID: strPtr("acc-1"), CategoryID: strPtr("cat-income"),
			},
		},
		{
			name: "expense with matching category",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeExpense, Amount: 300,
				AccountID: strPtr("acc-1"), CategoryID: strPtr("cat-expense"),
			},
		},
		{
			name: "income without category",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeIncome, Amount: 1000, AccountID: strPtr("acc-1"),
			},
			wantErr: ErrCategoryRequired,
		},
		{
			name: "expense with income category",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeExpense, Amount: 300,
				AccountID: strPtr("acc-1"), CategoryID: strPtr("cat-income"),
			},
			wantErr: ErrCategoryTypeMismatch,
		},
		{
			name: "transfer with category",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeTransfer, Amount: 500,
				AccountID: strPtr("acc-1"), ToAccountID: strPtr("acc-2"),
				CategoryID: strPtr("cat-expense"),
			},
			wantErr: ErrCategoryForbidden,
		},
		{
			name: "transfer between distinct accounts",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeTransfer, Amount: 500,
				AccountID: strPtr("acc-1"), ToAccountID: strPtr("acc-2"),
			},
		},
		{
			name: "transfer to the same account",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeTransfer, Amount: 500,
				AccountID: strPtr("acc-1"), ToAccountID: strPtr("acc-1"),
			},
			wantErr: ErrSameAccount,
		},
		{
			name: "zero amount",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeExpense, Amount: 0,
				AccountID: strPtr("acc-1"), CategoryID: strPtr("cat-expense"),
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "unknown type",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: "loan", Amount: 100, AccountID: strPtr("acc-1"),
			},
			wantErr: ErrInvalidType,
		},
		{
			name: "category from another budget",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeExpense, Amount: 300,
				AccountID: strPtr("acc-1"), CategoryID: strPtr("cat-foreign"),
			},
			wantErr: category.ErrCategoryNotFound,
		},
		{
			name: "account from another budget",
			params: CreateParams{
				BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
				Type: TypeExpense, Amount: 300,
				AccountID: strPtr("acc-x"), CategoryID: strPtr("cat-expense"),
			},
			wantErr: account.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := fixtureService(nil)
			_, err := service.Create(context.Background(), tt.params)

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

func TestCreate_TransferEvents(t *testing.T) {
	var events []ledger.RecordParams
	service := fixtureService(&events)

	_, err := service.Create(context.Background(), CreateParams{
		BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
		Type: TypeTransfer, Amount: 500,
		AccountID: strPtr("acc-1"), ToAccountID: strPtr("acc-2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 transfer legs, got %d", len(events))
	}
	if events[0].Delta != -500 || events[0].AccountID != "acc-1" {
		t.Errorf("unexpected from leg: %+v", events[0])
	}
	if events[1].Delta != 500 || events[1].AccountID != "acc-2" {
		t.Errorf("unexpected to leg: %+v", events[1])
	}
	if events[0].Delta+events[1].Delta != 0 {
		t.Error("transfer legs must net to zero")
	}
	for _, e := range events {
		if e.Reason != ledger.ReasonTransfer {
			t.Errorf("expected transfer reason, got %q", e.Reason)
		}
	}
}

func TestCreate_ExpenseEvent(t *testing.T) {
	var events []ledger.RecordParams
	service := fixtureService(&events)

	_, err := service.Create(context.Background(), CreateParams{
		BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
		Type: TypeExpense, Amount: 300,
		AccountID: strPtr("acc-1"), CategoryID: strPtr("cat-expense"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Delta != -300 {
		t.Errorf("expected delta -300, got %d", events[0].Delta)
	}
	if events[0].Reason != ledger.ReasonTransaction {
		t.Errorf("expected transaction reason, got %q", events[0].Reason)
	}
}

func TestCreate_GoalTransferEvent(t *testing.T) {
	var events []ledger.RecordParams
	service := fixtureService(&events)

	_, err := service.Create(context.Background(), CreateParams{
		BudgetID: "budget-1", UserID: "user-1", Date: date("2026-02-10"),
		Type: TypeExpense, Kind: KindGoalTransfer, Amount: 1000,
		AccountID: strPtr("acc-1"), GoalID: strPtr("goal-1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Reason != ledger.ReasonGoalTransfer {
		t.Errorf("expected goal transfer reason, got %q", events[0].Reason)
	}
	if events[0].Delta != -1000 {
		t.Errorf("expected delta -1000, got %d", events[0].Delta)
	}
}

func TestDelete_RequiresOwnership(t *testing.T) {
	deleted := false
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
			return &Transaction{ID: id, UserID: "owner"}, nil
		},
		DeleteWithEventsFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	service := NewService(repo, &MockAccountReader{}, &MockCategoryReader{}, allowAll())

	if err := service.Delete(context.Background(), "intruder", "tx-1"); err != ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if deleted {
		t.Error("delete should not reach the repository")
	}

	if err := service.Delete(context.Background(), "owner", "tx-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected delete to reach the repository")
	}
}
