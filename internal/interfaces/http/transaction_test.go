package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/category"
	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/transaction"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateWithEventsFunc func(ctx context.Context, params transaction.CreateParams, events []ledger.RecordParams) (*transaction.Transaction, error)
	GetByIDFunc          func(ctx context.Context, id string) (*transaction.Transaction, error)
	ListByBudgetFunc     func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error)
	DeleteWithEventsFunc func(ctx context.Context, id string) error
}

func (m *MockTransactionRepo) CreateWithEvents(ctx context.Context, params transaction.CreateParams, events []ledger.RecordParams) (*transaction.Transaction, error) {
	return m.CreateWithEventsFunc(ctx, params, events)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockTransactionRepo) ListByBudget(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	return m.ListByBudgetFunc(ctx, budgetID, filter)
}

func (m *MockTransactionRepo) DeleteWithEvents(ctx context.Context, id string) error {
	return m.DeleteWithEventsFunc(ctx, id)
}

type mockAccountReader struct {
	accounts map[string]*account.Account
}

func (m *mockAccountReader) GetByID(ctx context.Context, id string) (*account.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return acc, nil
}

type mockCategoryReader struct {
	categories map[string]*category.Category
}

func (m *mockCategoryReader) GetByID(ctx context.Context, id string) (*category.Category, error) {
	cat, ok := m.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return cat, nil
}

func newTransactionHandler(repo *MockTransactionRepo) *TransactionHandler {
	accounts := &mockAccountReader{accounts: map[string]*account.Account{
		"acc-1": {ID: "acc-1", BudgetID: "budget-1", Kind: account.KindCash},
		"acc-2": {ID: "acc-2", BudgetID: "budget-1", Kind: account.KindBank},
	}}
	categories := &mockCategoryReader{categories: map[string]*category.Category{
		"cat-food": {ID: "cat-food", BudgetID: "budget-1", Type: category.TypeExpense},
	}}
	return NewTransactionHandler(transaction.NewService(repo, accounts, categories, allowAll()))
}

func strPtr(s string) *string { return &s }

func TestHandleTransactions_CreateExpense(t *testing.T) {
	var gotEvents []ledger.RecordParams
	repo := &MockTransactionRepo{
		CreateWithEventsFunc: func(ctx context.Context, params transaction.CreateParams, events []ledger.RecordParams) (*transaction.Transaction, error) {
			gotEvents = events
			return &transaction.Transaction{ID: "tx-1", BudgetID: params.BudgetID, Type: params.Type, Amount: params.Amount}, nil
		},
	}
	handler := newTransactionHandler(repo)

	body, _ := json.Marshal(CreateTransactionRequest{
		BudgetID:   "budget-1",
		Date:       "2026-08-29",
		Type:       transaction.TypeExpense,
		Amount:     500,
		AccountID:  strPtr("acc-1"),
		CategoryID: strPtr("cat-food"),
	})
	req := authed(httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body)), "user-1")
	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if len(gotEvents) != 1 {
		t.Fatalf("expected 1 balance event, got %d", len(gotEvents))
	}
	if gotEvents[0].Delta != -500 {
		t.Errorf("event delta = %d, want -500", gotEvents[0].Delta)
	}
}

func TestHandleTransactions_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateTransactionRequest
	}{
		{
			name: "transfer with same account",
			req: CreateTransactionRequest{
				BudgetID:  "budget-1",
				Date:      "2026-08-29",
				Type:      transaction.TypeTransfer,
				Amount:    100,
				AccountID: strPtr("acc-1"), ToAccountID: strPtr("acc-1"),
			},
		},
		{
			name: "expense without category",
			req: CreateTransactionRequest{
				BudgetID:  "budget-1",
				Date:      "2026-08-29",
				Type:      transaction.TypeExpense,
				Amount:    100,
				AccountID: strPtr("acc-1"),
			},
		},
		{
			name: "zero amount",
			req: CreateTransactionRequest{
				BudgetID:   "budget-1",
				Date:       "2026-08-29",
				Type:       transaction.TypeExpense,
				AccountID:  strPtr("acc-1"),
				CategoryID: strPtr("cat-food"),
			},
		},
		{
			name: "bad date",
			req: CreateTransactionRequest{
				BudgetID:   "budget-1",
				Date:       "29.08.2026",
				Type:       transaction.TypeExpense,
				Amount:     100,
				AccountID:  strPtr("acc-1"),
				CategoryID: strPtr("cat-food"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTransactionRepo{
				CreateWithEventsFunc: func(ctx context.Context, params transaction.CreateParams, events []ledger.RecordParams) (*transaction.Transaction, error) {
					t.Fatal("repository reached on invalid input")
					return nil, nil
				},
			}
			handler := newTransactionHandler(repo)

			body, _ := json.Marshal(tt.req)
			req := authed(httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body)), "user-1")
			rr := httptest.NewRecorder()
			handler.HandleTransactions(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusBadRequest, rr.Body.String())
			}
			if kind := decodeErrorKind(t, rr.Body.Bytes()); kind != kindValidation {
				t.Errorf("error kind = %q, want %q", kind, kindValidation)
			}
		})
	}
}

func TestHandleTransactions_ListWithFilters(t *testing.T) {
	var gotFilter transaction.ListFilter
	repo := &MockTransactionRepo{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			gotFilter = filter
			return []transaction.Transaction{{ID: "tx-1"}}, nil
		},
	}
	handler := newTransactionHandler(repo)

	url := "/api/transactions?budgetId=budget-1&from=2026-08-01&to=2026-08-31&type=expense"
	req := authed(httptest.NewRequest(http.MethodGet, url, nil), "user-1")
	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	if gotFilter.From == nil || gotFilter.From.Format("2006-01-02") != "2026-08-01" {
		t.Errorf("from filter not passed through: %v", gotFilter.From)
	}
	if gotFilter.To == nil || gotFilter.To.Format("2006-01-02") != "2026-08-31" {
		t.Errorf("to filter not passed through: %v", gotFilter.To)
	}
	if gotFilter.Type != "expense" {
		t.Errorf("type filter = %q, want %q", gotFilter.Type, "expense")
	}
}

func TestHandleTransactionByID_DeleteForbidden(t *testing.T) {
	repo := &MockTransactionRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*transaction.Transaction, error) {
			return &transaction.Transaction{ID: id, UserID: "someone-else"}, nil
		},
	}
	handler := newTransactionHandler(repo)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/transactions/tx-1", nil), "user-1")
	req.SetPathValue("id", "tx-1")
	rr := httptest.NewRecorder()
	handler.HandleTransactionByID(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if kind := decodeErrorKind(t, rr.Body.Bytes()); kind != kindAuthorization {
		t.Errorf("error kind = %q, want %q", kind, kindAuthorization)
	}
}
