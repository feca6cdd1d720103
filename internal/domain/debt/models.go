package debt

import (
	"errors"
	"fmt"
	"time"
)

const (
	DirectionBorrowed = "borrowed"
	DirectionRepaid   = "repaid"
)

var (
	ErrDebtNotFound      = errors.New("debt not found")
	ErrForbidden         = errors.New("debt does not belong to user")
	ErrInvalidDirection  = errors.New("direction must be borrowed or repaid")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrNoMatchingAccount = errors.New("no account matches the asset side")
	ErrInsufficientFunds = errors.New("asset balance would go negative")
	ErrNegativeDebt      = errors.New("debt total would go negative")
	ErrInvalidInput      = errors.New("invalid debt input")
)

// DebtOther is money owed to a specific person, tracked outside of
// accounts
type DebtOther struct {
	ID        string    `json:"id"`
	BudgetID  string    `json:"budgetId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a debt record
type CreateParams struct {
	BudgetID string
	UserID   string
	Name     string
	Amount   int64
	Note     string
}

// Validate validates the debt creation parameters
func (p CreateParams) Validate() error {
	if p.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: debt name is required", ErrInvalidInput)
	}
	if p.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return nil
}

// ApplyParams describes a borrow or repay operation against one
// asset side for a date
type ApplyParams struct {
	BudgetID  string
	UserID    string
	Date      time.Time
	Direction string
	AssetSide string
	Amount    int64
}

// ApplyChange is the resolved, atomic write for an apply operation:
// the balance event delta on the chosen account and the full field
// replacement on the snapshot row. Cash and bank totals carry the
// post-event values so the asset side of the snapshot moves together
// with the debt side.
type ApplyChange struct {
	BudgetID       string
	UserID         string
	Date           time.Time
	AccountID      string
	AssetDelta     int64
	CashTotal      int64
	BankTotal      int64
	DebtCardsTotal int64
	DebtOtherTotal int64
}
