package reconcile

import (
	"context"
	"time"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/transaction"
)

// TransactionLister provides a day's transactions for the bottom view
type TransactionLister interface {
	ListByBudget(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error)
}

// Snapshots is the slice of the daily state service the calculator
// needs for the top view and for applying corrections
type Snapshots interface {
	GetOrDefault(ctx context.Context, userID, budgetID string, date time.Time) (*dailystate.State, error)
	TopTotal(ctx context.Context, budgetID string, date time.Time) (int64, error)
	UpsertAssets(ctx context.Context, userID, budgetID string, date time.Time, cashTotal, bankTotal int64) (*dailystate.State, error)
}

// Ledger records the corrective balance event behind an applied
// adjustment and resolves which account carries it
type Ledger interface {
	BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error)
	Record(ctx context.Context, params ledger.RecordParams) (*ledger.Event, error)
}

// Service compares the transaction ledger against the daily snapshot
// and produces corrective adjustments
type Service struct {
	transactions TransactionLister
	snapshots    Snapshots
	events       Ledger
	auth         budget.Authorizer
}

// NewService creates a new reconciliation service
func NewService(transactions TransactionLister, snapshots Snapshots, events Ledger, auth budget.Authorizer) *Service {
	return &Service{transactions: transactions, snapshots: snapshots, events: events, auth: auth}
}

// BottomTotal folds a day's transactions into a signed total. Income
// adds, expense subtracts, transfers net to zero since both legs stay
// inside the budget. Order of transactions does not matter.
func BottomTotal(transactions []transaction.Transaction) int64 {
	var total int64
	for _, tx := range transactions {
		switch tx.Type {
		case transaction.TypeIncome:
			total += tx.Amount
		case transaction.TypeExpense:
			total -= tx.Amount
		}
	}
	return total
}

// Check computes both views for a date and whether they agree within
// the tolerance
func (s *Service) Check(ctx context.Context, userID, budgetID string, date time.Time) (*Result, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListByBudget(ctx, budgetID, transaction.ListFilter{Date: &date})
	if err != nil {
		return nil, err
	}
	bottom := BottomTotal(txs)

	top, err := s.snapshots.TopTotal(ctx, budgetID, date)
	if err != nil {
		return nil, err
	}

	diff := top - bottom
	return &Result{
		Date:        date,
		BottomTotal: bottom,
		TopTotal:    top,
		Diff:        diff,
		IsOK:        abs(diff) <= Tolerance,
	}, nil
}

// Suggestions returns the corrective adjustments for a date, one per
// asset field. Each moves the top view by exactly the amount needed
// to close the gap; an already reconciled day yields none.
func (s *Service) Suggestions(ctx context.Context, userID, budgetID string, date time.Time) (*Result, []Suggestion, error) {
	result, err := s.Check(ctx, userID, budgetID, date)
	if err != nil {
		return nil, nil, err
	}
	if result.IsOK {
		return result, nil, nil
	}

	state, err := s.snapshots.GetOrDefault(ctx, userID, budgetID, date)
	if err != nil {
		return nil, nil, err
	}

	delta := -result.Diff
	return result, []Suggestion{
		{Field: FieldCash, Delta: delta, NewValue: state.CashTotal + delta},
		{Field: FieldBank, Delta: delta, NewValue: state.BankTotal + delta},
	}, nil
}

// Apply closes the gap for a date by replacing one snapshot asset
// field. The same delta is recorded as a reconcile_adjust balance
// event on an account of the matching kind, so a later snapshot
// rebuild from the event history lands on the corrected value instead
// of reverting it. Applying to an already reconciled day is a no-op,
// so a retried request cannot over-correct. An adjustment that would
// push the field negative is rejected without touching any state.
func (s *Service) Apply(ctx context.Context, userID, budgetID string, date time.Time, field string) (*Result, error) {
	if field != FieldCash && field != FieldBank {
		return nil, ErrUnknownField
	}

	result, err := s.Check(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	if result.IsOK {
		return result, nil
	}

	state, err := s.snapshots.GetOrDefault(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}

	cash, bank := state.CashTotal, state.BankTotal
	delta := -result.Diff
	kind := account.KindCash
	switch field {
	case FieldCash:
		cash += delta
		if cash < 0 {
			return nil, ErrNegativeBalance
		}
	case FieldBank:
		kind = account.KindBank
		bank += delta
		if bank < 0 {
			return nil, ErrNegativeBalance
		}
	}

	accountID, err := s.pickAccount(ctx, userID, budgetID, date, kind)
	if err != nil {
		return nil, err
	}
	if _, err := s.events.Record(ctx, ledger.RecordParams{
		BudgetID:  budgetID,
		UserID:    userID,
		AccountID: accountID,
		Date:      date,
		Delta:     delta,
		Reason:    ledger.ReasonReconcileAdjust,
	}); err != nil {
		return nil, err
	}

	if _, err := s.snapshots.UpsertAssets(ctx, userID, budgetID, date, cash, bank); err != nil {
		return nil, err
	}
	return s.Check(ctx, userID, budgetID, date)
}

// pickAccount returns the first account of the given kind with a
// ledger presence as of the date
func (s *Service) pickAccount(ctx context.Context, userID, budgetID string, date time.Time, kind string) (string, error) {
	lines, err := s.events.BalancesAsOf(ctx, userID, budgetID, date)
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		if line.Kind == kind {
			return line.AccountID, nil
		}
	}
	return "", ErrNoMatchingAccount
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
