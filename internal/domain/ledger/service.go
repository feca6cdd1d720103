package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
)

// AccountLister provides the account list needed to expand balances
// into per-account lines and kind totals
type AccountLister interface {
	ListByBudgetID(ctx context.Context, budgetID string) ([]account.Account, error)
}

// Service handles balance event business logic
type Service struct {
	repo     Repository
	accounts AccountLister
	auth     budget.Authorizer
}

// NewService creates a new ledger service
func NewService(repo Repository, accounts AccountLister, auth budget.Authorizer) *Service {
	return &Service{repo: repo, accounts: accounts, auth: auth}
}

// Record writes one balance event. Events that carry a transaction ID
// are deduplicated on it: a retry for the same transaction returns
// ErrDuplicateEvent and leaves balances untouched.
func (s *Service) Record(ctx context.Context, params RecordParams) (*Event, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, params)
}

// ListEvents returns a budget's balance events ordered by date
func (s *Service) ListEvents(ctx context.Context, userID, budgetID string, from, to *time.Time) ([]Event, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, budgetID, from, to)
}

// BalancesAsOf returns every account in the budget with its balance
// as of the end of the given date. Accounts without events show zero.
func (s *Service) BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]BalanceLine, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	accounts, err := s.accounts.ListByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	lines := make([]BalanceLine, 0, len(accounts))
	for _, acc := range accounts {
		amount, err := s.repo.BalanceAsOf(ctx, budgetID, acc.ID, date)
		if err != nil {
			return nil, err
		}
		lines = append(lines, BalanceLine{
			AccountID: acc.ID,
			Name:      acc.Name,
			Kind:      acc.Kind,
			Amount:    amount,
		})
	}
	return lines, nil
}

// CalculateTotals folds balance lines into cash and noncash totals
func CalculateTotals(lines []BalanceLine) Totals {
	var totals Totals
	for _, line := range lines {
		if line.Kind == account.KindCash {
			totals.CashTotal += line.Amount
		} else {
			totals.NoncashTotal += line.Amount
		}
	}
	totals.AssetsTotal = totals.CashTotal + totals.NoncashTotal
	return totals
}

// HasEventsAsOf reports whether the budget has any balance event on
// or before the date. Reconciliation uses it to decide whether a
// snapshot day has ledger data at all.
func (s *Service) HasEventsAsOf(ctx context.Context, budgetID string, date time.Time) (bool, error) {
	return s.repo.HasEventsAsOf(ctx, budgetID, date)
}

// SetManualBalance pins an account's balance on a date to a desired
// amount. The stored event holds the delta from the balance excluding
// any previous manual adjustment for the same day, so calling it
// twice with the same desired amount is a no-op.
func (s *Service) SetManualBalance(ctx context.Context, userID, budgetID, accountID string, date time.Time, desired int64) (*Event, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", ErrInvalidInput)
	}

	current, err := s.repo.BalanceAsOf(ctx, budgetID, accountID, date)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetManualAdjust(ctx, budgetID, accountID, date)
	if err != nil && !errors.Is(err, ErrEventNotFound) {
		return nil, err
	}
	if existing != nil {
		current -= existing.Delta
	}

	return s.repo.UpsertManualAdjust(ctx, RecordParams{
		BudgetID:  budgetID,
		UserID:    userID,
		AccountID: accountID,
		Date:      date,
		Delta:     desired - current,
		Reason:    ReasonManualAdjust,
	})
}

// DeleteForTransaction removes the events a transaction produced, as
// part of deleting or rewriting that transaction
func (s *Service) DeleteForTransaction(ctx context.Context, transactionID string) error {
	return s.repo.DeleteByTransactionID(ctx, transactionID)
}
