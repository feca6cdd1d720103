package debt

import (
	"context"
	"time"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/domain/ledger"
)

// Balances provides per-account ledger balances for picking the
// target account of an apply operation
type Balances interface {
	BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error)
}

// Snapshots provides the current snapshot row for debt totals
type Snapshots interface {
	GetOrDefault(ctx context.Context, userID, budgetID string, date time.Time) (*dailystate.State, error)
}

// Service handles debt business logic
type Service struct {
	repo      Repository
	balances  Balances
	snapshots Snapshots
	auth      budget.Authorizer
}

// NewService creates a new debt service
func NewService(repo Repository, balances Balances, snapshots Snapshots, auth budget.Authorizer) *Service {
	return &Service{repo: repo, balances: balances, snapshots: snapshots, auth: auth}
}

// Create records a named debt in a budget the user owns
func (s *Service) Create(ctx context.Context, params CreateParams) (*DebtOther, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, params.UserID, params.BudgetID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// ListByBudget lists the debts in a budget the user owns
func (s *Service) ListByBudget(ctx context.Context, userID, budgetID string) ([]DebtOther, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, budgetID)
}

// Delete removes a debt record the user owns
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	debt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if debt.UserID != userID {
		return ErrForbidden
	}
	if err := s.auth.Authorize(ctx, userID, debt.BudgetID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Apply moves money between the people-debt total and one asset side
// for a date. Borrowing raises both; repaying lowers both and fails
// when either side would go negative. The two writes commit together
// or not at all, and the returned state reflects both.
func (s *Service) Apply(ctx context.Context, params ApplyParams) (*dailystate.State, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if params.Direction != DirectionBorrowed && params.Direction != DirectionRepaid {
		return nil, ErrInvalidDirection
	}
	if !account.IsValidKind(params.AssetSide) {
		return nil, ErrNoMatchingAccount
	}
	if err := s.auth.Authorize(ctx, params.UserID, params.BudgetID); err != nil {
		return nil, err
	}

	lines, err := s.balances.BalancesAsOf(ctx, params.UserID, params.BudgetID, params.Date)
	if err != nil {
		return nil, err
	}
	var target *ledger.BalanceLine
	for i := range lines {
		if lines[i].Kind == params.AssetSide {
			target = &lines[i]
			break
		}
	}
	if target == nil {
		return nil, ErrNoMatchingAccount
	}

	delta := params.Amount
	if params.Direction == DirectionRepaid {
		delta = -params.Amount
	}
	if target.Amount+delta < 0 {
		return nil, ErrInsufficientFunds
	}

	state, err := s.snapshots.GetOrDefault(ctx, params.UserID, params.BudgetID, params.Date)
	if err != nil {
		return nil, err
	}
	debtTotal := state.DebtOtherTotal + delta
	if debtTotal < 0 {
		return nil, ErrNegativeDebt
	}

	var cashTotal, bankTotal int64
	for _, line := range lines {
		if line.Kind == account.KindCash {
			cashTotal += line.Amount
		} else {
			bankTotal += line.Amount
		}
	}
	if params.AssetSide == account.KindCash {
		cashTotal += delta
	} else {
		bankTotal += delta
	}

	change := ApplyChange{
		BudgetID:       params.BudgetID,
		UserID:         params.UserID,
		Date:           params.Date,
		AccountID:      target.AccountID,
		AssetDelta:     delta,
		CashTotal:      cashTotal,
		BankTotal:      bankTotal,
		DebtCardsTotal: state.DebtCardsTotal,
		DebtOtherTotal: debtTotal,
	}
	if err := s.repo.Apply(ctx, change); err != nil {
		return nil, err
	}
	return s.snapshots.GetOrDefault(ctx, params.UserID, params.BudgetID, params.Date)
}
