package report

import (
	"context"
	"testing"
	"time"

	"kopilka/internal/domain/category"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/domain/goal"
	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/transaction"
)

// MockTransactionLister implements TransactionLister for testing
type MockTransactionLister struct {
	ListByBudgetFunc func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error)
}

func (m *MockTransactionLister) ListByBudget(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	return m.ListByBudgetFunc(ctx, budgetID, filter)
}

// MockSnapshots implements Snapshots for testing
type MockSnapshots struct {
	GetOrDefaultFunc   func(ctx context.Context, userID, budgetID string, date time.Time) (*dailystate.State, error)
	BalanceForDateFunc func(ctx context.Context, budgetID string, date time.Time) (int64, bool, error)
}

func (m *MockSnapshots) GetOrDefault(ctx context.Context, userID, budgetID string, date time.Time) (*dailystate.State, error) {
	return m.GetOrDefaultFunc(ctx, userID, budgetID, date)
}

func (m *MockSnapshots) BalanceForDate(ctx context.Context, budgetID string, date time.Time) (int64, bool, error) {
	return m.BalanceForDateFunc(ctx, budgetID, date)
}

// MockBalances implements Balances for testing
type MockBalances struct {
	BalancesAsOfFunc func(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error)
}

func (m *MockBalances) BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error) {
	return m.BalancesAsOfFunc(ctx, userID, budgetID, date)
}

// MockCategoryLister implements CategoryLister for testing
type MockCategoryLister struct {
	ListByBudgetIDFunc func(ctx context.Context, budgetID string) ([]category.Category, error)
}

func (m *MockCategoryLister) ListByBudgetID(ctx context.Context, budgetID string) ([]category.Category, error) {
	return m.ListByBudgetIDFunc(ctx, budgetID)
}

// MockGoalLister implements GoalLister for testing
type MockGoalLister struct {
	ListByBudgetFunc func(ctx context.Context, budgetID string) ([]goal.Goal, error)
}

func (m *MockGoalLister) ListByBudget(ctx context.Context, budgetID string) ([]goal.Goal, error) {
	return m.ListByBudgetFunc(ctx, budgetID)
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

func newService(txs *MockTransactionLister, snapshots *MockSnapshots, balances *MockBalances, cats *MockCategoryLister, goals *MockGoalLister) *Service {
	if txs == nil {
		txs = &MockTransactionLister{
			ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
				return nil, nil
			},
		}
	}
	if snapshots == nil {
		snapshots = &MockSnapshots{
			GetOrDefaultFunc: func(ctx context.Context, userID, budgetID string, d time.Time) (*dailystate.State, error) {
				return &dailystate.State{}, nil
			},
			BalanceForDateFunc: func(ctx context.Context, budgetID string, d time.Time) (int64, bool, error) {
				return 0, false, nil
			},
		}
	}
	if balances == nil {
		balances = &MockBalances{
			BalancesAsOfFunc: func(ctx context.Context, userID, budgetID string, d time.Time) ([]ledger.BalanceLine, error) {
				return nil, nil
			},
		}
	}
	if cats == nil {
		cats = &MockCategoryLister{
			ListByBudgetIDFunc: func(ctx context.Context, budgetID string) ([]category.Category, error) {
				return nil, nil
			},
		}
	}
	if goals == nil {
		goals = &MockGoalLister{
			ListByBudgetFunc: func(ctx context.Context, budgetID string) ([]goal.Goal, error) {
				return nil, nil
			},
		}
	}
	return NewService(txs, snapshots, balances, cats, goals, allowAll())
}

func TestCashflowByDay(t *testing.T) {
	txs := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{
				{Date: date("2026-02-10"), Type: transaction.TypeIncome, Amount: 1000},
				{Date: date("2026-02-10"), Type: transaction.TypeExpense, Amount: 300},
				{Date: date("2026-02-10"), Type: transaction.TypeTransfer, Amount: 500},
				{Date: date("2026-02-12"), Type: transaction.TypeExpense, Amount: 200},
			}, nil
		},
	}

	service := newService(txs, nil, nil, nil, nil)
	days, err := service.CashflowByDay(context.Background(), "user-1", "budget-1",
		date("2026-02-10"), date("2026-02-12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].NetTotal != 700 {
		t.Errorf("expected net 700 on first day, got %d", days[0].NetTotal)
	}
	if days[1].IncomeTotal != 0 || days[1].ExpenseTotal != 0 {
		t.Errorf("expected empty middle day, got %+v", days[1])
	}
	if days[2].NetTotal != -200 {
		t.Errorf("expected net -200 on last day, got %d", days[2].NetTotal)
	}
}

func TestCashflowByDay_InvertedRange(t *testing.T) {
	service := newService(nil, nil, nil, nil, nil)
	_, err := service.CashflowByDay(context.Background(), "user-1", "budget-1",
		date("2026-02-12"), date("2026-02-10"))
	if err != ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestMonthReport(t *testing.T) {
	txs := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{
				{Date: date("2026-02-01"), Type: transaction.TypeIncome, Amount: 2800},
				{Date: date("2026-02-15"), Type: transaction.TypeExpense, Amount: 1400},
			}, nil
		},
	}
	balances := map[string]int64{"2026-02-14": 1000, "2026-02-15": -400}
	snapshots := &MockSnapshots{
		GetOrDefaultFunc: func(ctx context.Context, userID, budgetID string, d time.Time) (*dailystate.State, error) {
			return &dailystate.State{}, nil
		},
		BalanceForDateFunc: func(ctx context.Context, budgetID string, d time.Time) (int64, bool, error) {
			v, ok := balances[d.Format("2006-01-02")]
			return v, ok, nil
		},
	}

	service := newService(txs, snapshots, nil, nil, nil)
	report, err := service.MonthReport(context.Background(), "user-1", "budget-1", "2026-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(report.Days))
	}
	if report.MonthIncome != 2800 || report.MonthExpense != 1400 {
		t.Errorf("unexpected month totals: %+v", report)
	}
	if report.MonthNet != 1400 {
		t.Errorf("expected net 1400, got %d", report.MonthNet)
	}
	if report.AvgNetPerDay != 50 {
		t.Errorf("expected avg 50, got %d", report.AvgNetPerDay)
	}

	feb15 := report.Days[14]
	if feb15.BottomTotal != -1400 {
		t.Errorf("expected bottom -1400 on Feb 15, got %d", feb15.BottomTotal)
	}
	if feb15.TopTotal != -1400 {
		t.Errorf("expected top -1400 on Feb 15, got %d", feb15.TopTotal)
	}
	if feb15.Diff != 0 {
		t.Errorf("expected diff 0 on Feb 15, got %d", feb15.Diff)
	}

	// Feb 14 has a snapshot but Feb 13 does not, so its top is zero.
	if report.Days[13].TopTotal != 0 {
		t.Errorf("expected top 0 on Feb 14, got %d", report.Days[13].TopTotal)
	}
}

func TestMonthReport_BadMonth(t *testing.T) {
	service := newService(nil, nil, nil, nil, nil)
	_, err := service.MonthReport(context.Background(), "user-1", "budget-1", "февраль")
	if err != ErrInvalidMonth {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestExpensesByCategory(t *testing.T) {
	cats := &MockCategoryLister{
		ListByBudgetIDFunc: func(ctx context.Context, budgetID string) ([]category.Category, error) {
			return []category.Category{
				{ID: "food", Name: "Еда", Type: category.TypeExpense},
				{ID: "groceries", Name: "Продукты", Type: category.TypeExpense, ParentID: strPtr("food")},
				{ID: "cafes", Name: "Кафе", Type: category.TypeExpense, ParentID: strPtr("food")},
				{ID: "transport", Name: "Транспорт", Type: category.TypeExpense},
				{ID: "unused", Name: "Пустая", Type: category.TypeExpense},
			}, nil
		},
	}
	txs := &MockTransactionLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error) {
			return []transaction.Transaction{
				{Type: transaction.TypeExpense, Amount: 500, CategoryID: strPtr("groceries")},
				{Type: transaction.TypeExpense, Amount: 300, CategoryID: strPtr("cafes")},
				{Type: transaction.TypeExpense, Amount: 200, CategoryID: strPtr("food")},
				{Type: transaction.TypeExpense, Amount: 400, CategoryID: strPtr("transport")},
				{Type: transaction.TypeExpense, Amount: 100, CategoryID: nil},
			}, nil
		},
	}

	service := newService(txs, nil, nil, cats, nil)
	report, err := service.ExpensesByCategory(context.Background(), "user-1", "budget-1",
		date("2026-02-01"), date("2026-02-28"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalExpense != 1400 {
		t.Errorf("expected total 1400, got %d", report.TotalExpense)
	}
	if len(report.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(report.Items))
	}
	food := report.Items[0]
	if food.CategoryID != "food" || food.Amount != 1000 {
		t.Errorf("expected food first with 1000, got %+v", food)
	}
	if len(food.Children) != 2 {
		t.Errorf("expected 2 spending children, got %d", len(food.Children))
	}
	if report.Items[1].CategoryID != "transport" || report.Items[1].Amount != 400 {
		t.Errorf("expected transport second with 400, got %+v", report.Items[1])
	}
	if food.Share < 0.71 || food.Share > 0.72 {
		t.Errorf("expected food share ~0.714, got %f", food.Share)
	}
}

func TestSummary_ActiveGoalsOnly(t *testing.T) {
	snapshots := &MockSnapshots{
		GetOrDefaultFunc: func(ctx context.Context, userID, budgetID string, d time.Time) (*dailystate.State, error) {
			return &dailystate.State{DebtCardsTotal: 300, DebtOtherTotal: 150}, nil
		},
		BalanceForDateFunc: func(ctx context.Context, budgetID string, d time.Time) (int64, bool, error) {
			return 0, false, nil
		},
	}
	goals := &MockGoalLister{
		ListByBudgetFunc: func(ctx context.Context, budgetID string) ([]goal.Goal, error) {
			return []goal.Goal{
				{Title: "Отпуск", TargetAmount: 5000, CurrentAmount: 1000, Status: goal.StatusActive},
				{Title: "Сделано", TargetAmount: 100, CurrentAmount: 100, Status: goal.StatusDone},
			}, nil
		},
	}

	service := newService(nil, snapshots, nil, nil, goals)
	summary, err := service.Summary(context.Background(), "user-1", "budget-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.DebtCardsTotal != 300 || summary.DebtOtherTotal != 150 {
		t.Errorf("unexpected debt totals: %+v", summary)
	}
	if len(summary.GoalsActive) != 1 || summary.GoalsActive[0].Title != "Отпуск" {
		t.Errorf("expected only the active goal, got %+v", summary.GoalsActive)
	}
}
