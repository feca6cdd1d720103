package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Balance event reasons. Every change to an account balance is
// explained by exactly one of these.
const (
	ReasonInitial         = "initial"
	ReasonTransaction     = "transaction"
	ReasonTransfer        = "transfer"
	ReasonManualAdjust    = "manual_adjust"
	ReasonReconcileAdjust = "reconcile_adjust"
	ReasonGoalTransfer    = "goal_transfer"
)

var (
	ErrEventNotFound  = errors.New("balance event not found")
	ErrDuplicateEvent = errors.New("balance event already recorded for transaction")
	ErrInvalidInput   = errors.New("invalid balance event input")
)

// Event is one signed change to an account's balance on a date.
// TransactionID is set for events driven by a transaction write and
// enforces one-event-per-transaction; transfer legs leave it empty
// since a transfer produces two events.
type Event struct {
	ID            string    `json:"id"`
	BudgetID      string    `json:"budgetId"`
	UserID        string    `json:"userId"`
	AccountID     string    `json:"accountId"`
	Date          time.Time `json:"date"`
	Delta         int64     `json:"delta"`
	Reason        string    `json:"reason"`
	TransactionID *string   `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RecordParams contains parameters for recording a balance event
type RecordParams struct {
	BudgetID      string
	UserID        string
	AccountID     string
	Date          time.Time
	Delta         int64
	Reason        string
	TransactionID *string
}

// Validate validates the record parameters
func (p RecordParams) Validate() error {
	if p.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", ErrInvalidInput)
	}
	if p.UserID == "" {
		return fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	if p.AccountID == "" {
		return fmt.Errorf("%w: account ID is required", ErrInvalidInput)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	switch p.Reason {
	case ReasonInitial, ReasonTransaction, ReasonTransfer,
		ReasonManualAdjust, ReasonReconcileAdjust, ReasonGoalTransfer:
	default:
		return fmt.Errorf("%w: unknown balance event reason", ErrInvalidInput)
	}
	return nil
}

// BalanceLine is one account with its balance as of a date
type BalanceLine struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Amount    int64  `json:"amount"`
}

// Totals aggregates account balances by kind. Noncash covers every
// non-cash account kind.
type Totals struct {
	CashTotal    int64 `json:"cashTotal"`
	NoncashTotal int64 `json:"noncashTotal"`
	AssetsTotal  int64 `json:"assetsTotal"`
}
