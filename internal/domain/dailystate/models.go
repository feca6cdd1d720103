package dailystate

import (
	"errors"
	"time"

	"kopilka/internal/domain/ledger"
)

var (
	ErrStateNotFound = errors.New("daily state not found")
	ErrEmptyAccounts = errors.New("account list must not be empty")
	ErrInvalidInput  = errors.New("invalid daily state input")
)

// State is one budget's snapshot row for a date. Asset totals mirror
// what the user submitted; debt totals are entered directly since
// debts have no accounts behind them.
type State struct {
	ID             string    `json:"id"`
	BudgetID       string    `json:"budgetId"`
	UserID         string    `json:"userId"`
	Date           time.Time `json:"date"`
	CashTotal      int64     `json:"cashTotal"`
	BankTotal      int64     `json:"bankTotal"`
	DebtCardsTotal int64     `json:"debtCardsTotal"`
	DebtOtherTotal int64     `json:"debtOtherTotal"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AssetsTotal returns the sum of asset fields
func (s *State) AssetsTotal() int64 {
	return s.CashTotal + s.BankTotal
}

// DebtsTotal returns the sum of debt fields
func (s *State) DebtsTotal() int64 {
	return s.DebtCardsTotal + s.DebtOtherTotal
}

// Balance returns assets minus debts
func (s *State) Balance() int64 {
	return s.AssetsTotal() - s.DebtsTotal()
}

// UpsertParams contains the full field set written on snapshot upsert
type UpsertParams struct {
	BudgetID       string
	UserID         string
	Date           time.Time
	CashTotal      int64
	BankTotal      int64
	DebtCardsTotal int64
	DebtOtherTotal int64
}

// AccountAmount is one submitted account balance
type AccountAmount struct {
	AccountID string `json:"accountId"`
	Amount    int64  `json:"amount"`
}

// DebtTotals carries the user-entered debt fields
type DebtTotals struct {
	CreditCards int64 `json:"creditCards"`
	PeopleDebts int64 `json:"peopleDebts"`
}

// ViewTotals aggregates a snapshot view
type ViewTotals struct {
	CashTotal    int64 `json:"cashTotal"`
	NoncashTotal int64 `json:"noncashTotal"`
	AssetsTotal  int64 `json:"assetsTotal"`
	DebtsTotal   int64 `json:"debtsTotal"`
	BalanceTotal int64 `json:"balanceTotal"`
}

// View is the assembled daily state: per-account balances from the
// ledger, debt totals from the snapshot row, and the day-over-day
// top total.
type View struct {
	Date     time.Time            `json:"date"`
	Accounts []ledger.BalanceLine `json:"accounts"`
	Debts    DebtTotals           `json:"debts"`
	Totals   ViewTotals           `json:"totals"`
	TopTotal int64                `json:"topTotal"`
}
