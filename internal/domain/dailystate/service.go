package dailystate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/ledger"
)

// Ledger is the slice of the balance event service the snapshot
// assembly needs
type Ledger interface {
	BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error)
	SetManualBalance(ctx context.Context, userID, budgetID, accountID string, date time.Time, desired int64) (*ledger.Event, error)
}

// Service handles daily state business logic
type Service struct {
	repo   Repository
	ledger Ledger
	auth   budget.Authorizer
}

// NewService creates a new daily state service
func NewService(repo Repository, ldg Ledger, auth budget.Authorizer) *Service {
	return &Service{repo: repo, ledger: ldg, auth: auth}
}

// GetOrDefault returns the snapshot row for a date, or a zero-valued
// state when the user has not filled that day in yet. Reads never
// create rows.
func (s *Service) GetOrDefault(ctx context.Context, userID, budgetID string, date time.Time) (*State, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	state, err := s.repo.GetByDate(ctx, budgetID, date)
	if errors.Is(err, ErrStateNotFound) {
		return &State{BudgetID: budgetID, UserID: userID, Date: date}, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// BalanceForDate returns the snapshot balance for a date and whether
// the day has a snapshot row at all
func (s *Service) BalanceForDate(ctx context.Context, budgetID string, date time.Time) (int64, bool, error) {
	state, err := s.repo.GetByDate(ctx, budgetID, date)
	if errors.Is(err, ErrStateNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return state.Balance(), true, nil
}

// TopTotal is the day-over-day change of the snapshot balance. It is
// zero unless both the date and the previous day have snapshot rows,
// since a missing side makes the difference meaningless.
func (s *Service) TopTotal(ctx context.Context, budgetID string, date time.Time) (int64, error) {
	today, hasToday, err := s.BalanceForDate(ctx, budgetID, date)
	if err != nil {
		return 0, err
	}
	prev, hasPrev, err := s.BalanceForDate(ctx, budgetID, date.AddDate(0, 0, -1))
	if err != nil {
		return 0, err
	}
	if !hasToday || !hasPrev {
		return 0, nil
	}
	return today - prev, nil
}

// Delta is TopTotal for a budget the user owns
func (s *Service) Delta(ctx context.Context, userID, budgetID string, date time.Time) (int64, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return 0, err
	}
	return s.TopTotal(ctx, budgetID, date)
}

// View assembles the full daily state response for a date
func (s *Service) View(ctx context.Context, userID, budgetID string, date time.Time) (*View, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	lines, err := s.ledger.BalancesAsOf(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	assetTotals := ledger.CalculateTotals(lines)

	state, err := s.GetOrDefault(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	debtsTotal := state.DebtsTotal()

	topTotal, err := s.TopTotal(ctx, budgetID, date)
	if err != nil {
		return nil, err
	}

	return &View{
		Date:     date,
		Accounts: lines,
		Debts: DebtTotals{
			CreditCards: state.DebtCardsTotal,
			PeopleDebts: state.DebtOtherTotal,
		},
		Totals: ViewTotals{
			CashTotal:    assetTotals.CashTotal,
			NoncashTotal: assetTotals.NoncashTotal,
			AssetsTotal:  assetTotals.AssetsTotal,
			DebtsTotal:   debtsTotal,
			BalanceTotal: assetTotals.AssetsTotal - debtsTotal,
		},
		TopTotal: topTotal,
	}, nil
}

// Update records the user-submitted snapshot: pins every submitted
// account balance through a manual adjustment, refreshes the snapshot
// row's asset totals by account kind, and stores debt fields when
// given. Returns the reassembled view.
func (s *Service) Update(ctx context.Context, userID, budgetID string, date time.Time, amounts []AccountAmount, accounts []account.Account, debts *DebtTotals) (*View, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if len(amounts) == 0 {
		return nil, ErrEmptyAccounts
	}
	if debts != nil && (debts.CreditCards < 0 || debts.PeopleDebts < 0) {
		return nil, fmt.Errorf("%w: debt totals must not be negative", ErrInvalidInput)
	}

	kinds := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		kinds[acc.ID] = acc.Kind
	}
	for _, item := range amounts {
		if _, ok := kinds[item.AccountID]; !ok {
			return nil, account.ErrAccountNotFound
		}
		if item.Amount < 0 {
			return nil, fmt.Errorf("%w: account balances must not be negative", ErrInvalidInput)
		}
	}

	for _, item := range amounts {
		if _, err := s.ledger.SetManualBalance(ctx, userID, budgetID, item.AccountID, date, item.Amount); err != nil {
			return nil, err
		}
	}

	// Refresh the snapshot row from the resulting ledger balances so
	// the day-over-day total sees the same numbers the user sees.
	lines, err := s.ledger.BalancesAsOf(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	var cashTotal, bankTotal int64
	for _, line := range lines {
		if line.Kind == account.KindCash {
			cashTotal += line.Amount
		} else {
			bankTotal += line.Amount
		}
	}

	state, err := s.GetOrDefault(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	params := UpsertParams{
		BudgetID:       budgetID,
		UserID:         userID,
		Date:           date,
		CashTotal:      cashTotal,
		BankTotal:      bankTotal,
		DebtCardsTotal: state.DebtCardsTotal,
		DebtOtherTotal: state.DebtOtherTotal,
	}
	if debts != nil {
		params.DebtCardsTotal = debts.CreditCards
		params.DebtOtherTotal = debts.PeopleDebts
	}
	if _, err := s.repo.Upsert(ctx, params); err != nil {
		return nil, err
	}

	return s.View(ctx, userID, budgetID, date)
}

// UpsertAssets replaces the asset fields for a date, keeping the
// debt fields as they are. Reconciliation corrections land here.
func (s *Service) UpsertAssets(ctx context.Context, userID, budgetID string, date time.Time, cashTotal, bankTotal int64) (*State, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	state, err := s.GetOrDefault(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, UpsertParams{
		BudgetID:       budgetID,
		UserID:         userID,
		Date:           date,
		CashTotal:      cashTotal,
		BankTotal:      bankTotal,
		DebtCardsTotal: state.DebtCardsTotal,
		DebtOtherTotal: state.DebtOtherTotal,
	})
}

// UpsertDebts stores the debt fields for a date, keeping the asset
// fields as they are
func (s *Service) UpsertDebts(ctx context.Context, userID, budgetID string, date time.Time, debts DebtTotals) (*State, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if debts.CreditCards < 0 || debts.PeopleDebts < 0 {
		return nil, fmt.Errorf("%w: debt totals must not be negative", ErrInvalidInput)
	}

	state, err := s.GetOrDefault(ctx, userID, budgetID, date)
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, UpsertParams{
		BudgetID:       budgetID,
		UserID:         userID,
		Date:           date,
		CashTotal:      state.CashTotal,
		BankTotal:      state.BankTotal,
		DebtCardsTotal: debts.CreditCards,
		DebtOtherTotal: debts.PeopleDebts,
	})
}
