package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/reconcile"
	"kopilka/internal/domain/transaction"
)

// MockTransactionLister implements reconcile.TransactionLister for testing
type MockTransactionLister struct {
	ListByBudgetFunc func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error)
}

func (m *MockTransactionLister) ListByBudget(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	return m.ListByBudgetFunc(ctx, budgetID, filter)
}

// MockSnapshots implements reconcile.Snapshots with mutable state so
// an applied adjustment shows up in the follow-up check
type MockSnapshots struct {
	state    *dailystate.State
	topTotal int64
	upserts  int
}

func (m *MockSnapshots) GetOrDefault(ctx context.Context, userID, budgetID string, date time.Time) (*dailystate.State, error) {
	return m.state, nil
}

func (m *MockSnapshots) TopTotal(ctx context.Context, budgetID string, date time.Time) (int64, error) {
	return m.topTotal, nil
}

func (m *MockSnapshots) UpsertAssets(ctx context.Context, userID, budgetID string, date time.Time, cashTotal, bankTotal int64) (*dailystate.State, error) {
	delta := (cashTotal + bankTotal) - m.state.AssetsTotal()
	m.state.CashTotal = cashTotal
	m.state.BankTotal = bankTotal
	m.topTotal += delta
	m.upserts++
	return m.state, nil
}

// MockReconcileLedger implements reconcile.Ledger for testing
type MockReconcileLedger struct {
	recorded []ledger.RecordParams
}

func (m *MockReconcileLedger) BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error) {
	return []ledger.BalanceLine{
		{AccountID: "acc-cash", Kind: account.KindCash, Amount: 2000},
		{AccountID: "acc-bank", Kind: account.KindBank, Amount: 1000},
	}, nil
}

func (m *MockReconcileLedger) Record(ctx context.Context, params ledger.RecordParams) (*ledger.Event, error) {
	m.recorded = append(m.recorded, params)
	return &ledger.Event{ID: "evt-1", AccountID: params.AccountID, Delta: params.Delta, Reason: params.Reason}, nil
}

func incomeTx(amount int64) transaction.Transaction {
	return transaction.Transaction{
		ID:       "tx-1",
		BudgetID: "budget-1",
		Type:     transaction.TypeIncome,
		Amount:   amount,
	}
}

func TestHandleReconcile_Mismatch(t *testing.T) {
	lister := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{incomeTx(1000)}, nil
		},
	}
	snapshots := &MockSnapshots{
		state:    &dailystate.State{BudgetID: "budget-1", CashTotal: 2000, BankTotal: 1000},
		topTotal: 0,
	}
	handler := NewReconcileHandler(reconcile.NewService(lister, snapshots, &MockReconcileLedger{}, allowAll()))

	req := httptest.NewRequest(http.MethodGet, "/api/reconcile?budgetId=budget-1&date=2026-08-29", nil)
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, authed(req, "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp ReconcileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.IsOK {
		t.Error("expected mismatch, got isOk=true")
	}
	if resp.Result.Diff != -1000 {
		t.Errorf("expected diff -1000, got %d", resp.Result.Diff)
	}
	if len(resp.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(resp.Suggestions))
	}
	for _, s := range resp.Suggestions {
		if s.Delta != 1000 {
			t.Errorf("suggestion %s: expected delta 1000, got %d", s.Field, s.Delta)
		}
	}
}

func TestHandleReconcile_BalancedDayHasNoSuggestions(t *testing.T) {
	lister := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{incomeTx(500)}, nil
		},
	}
	snapshots := &MockSnapshots{
		state:    &dailystate.State{BudgetID: "budget-1", CashTotal: 500},
		topTotal: 500,
	}
	handler := NewReconcileHandler(reconcile.NewService(lister, snapshots, &MockReconcileLedger{}, allowAll()))

	req := httptest.NewRequest(http.MethodGet, "/api/reconcile?budgetId=budget-1&date=2026-08-29", nil)
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, authed(req, "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp ReconcileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Result.IsOK {
		t.Error("expected isOk=true")
	}
	if resp.Suggestions == nil || len(resp.Suggestions) != 0 {
		t.Errorf("expected empty suggestions array, got %v", resp.Suggestions)
	}
}

func TestHandleApply_ClosesTheGap(t *testing.T) {
	lister := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{incomeTx(1000)}, nil
		},
	}
	snapshots := &MockSnapshots{
		state:    &dailystate.State{BudgetID: "budget-1", CashTotal: 2000, BankTotal: 1000},
		topTotal: 0,
	}
	events := &MockReconcileLedger{}
	handler := NewReconcileHandler(reconcile.NewService(lister, snapshots, events, allowAll()))

	body := bytes.NewBufferString(`{"budgetId":"budget-1","date":"2026-08-29","field":"cash_total"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reconcile/apply", body)
	rec := httptest.NewRecorder()
	handler.HandleApply(rec, authed(req, "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var result reconcile.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.IsOK {
		t.Errorf("expected reconciled after apply, got diff %d", result.Diff)
	}
	if snapshots.state.CashTotal != 3000 {
		t.Errorf("expected cash total 3000 after apply, got %d", snapshots.state.CashTotal)
	}
	if snapshots.upserts != 1 {
		t.Errorf("expected one snapshot write, got %d", snapshots.upserts)
	}
	if len(events.recorded) != 1 || events.recorded[0].Reason != ledger.ReasonReconcileAdjust {
		t.Errorf("expected one reconcile_adjust event, got %+v", events.recorded)
	}
}

func TestHandleApply_RejectsNegativeBalance(t *testing.T) {
	lister := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{{
				ID:       "tx-1",
				BudgetID: "budget-1",
				Type:     transaction.TypeExpense,
				Amount:   3000,
			}}, nil
		},
	}
	snapshots := &MockSnapshots{
		state:    &dailystate.State{BudgetID: "budget-1", CashTotal: 2000, BankTotal: 1000},
		topTotal: 0,
	}
	handler := NewReconcileHandler(reconcile.NewService(lister, snapshots, &MockReconcileLedger{}, allowAll()))

	body := bytes.NewBufferString(`{"budgetId":"budget-1","date":"2026-08-29","field":"cash_total"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reconcile/apply", body)
	rec := httptest.NewRecorder()
	handler.HandleApply(rec, authed(req, "user-1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d (body %s)", rec.Code, rec.Body.String())
	}
	if kind := decodeErrorKind(t, rec.Body.Bytes()); kind != kindValidation {
		t.Errorf("expected kind %q, got %q", kindValidation, kind)
	}
	if snapshots.upserts != 0 {
		t.Errorf("expected no snapshot writes, got %d", snapshots.upserts)
	}
}
