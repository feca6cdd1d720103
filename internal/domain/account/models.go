package account

import (
	"errors"
	"fmt"
	"time"
)

const (
	KindCash = "cash"
	KindBank = "bank"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateName   = errors.New("account name already exists in budget")
	ErrInvalidInput    = errors.New("invalid account input")
)

// Account is a money holder inside a budget. Every transaction leg
// and balance snapshot references exactly one account.
type Account struct {
	ID        string    `json:"id"`
	BudgetID  string    `json:"budgetId"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating an account
type CreateParams struct {
	BudgetID string
	Name     string
	Kind     string
}

// Validate validates the account creation parameters
func (p CreateParams) Validate() error {
	if p.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}
	if !IsValidKind(p.Kind) {
		return fmt.Errorf("%w: account kind must be cash or bank", ErrInvalidInput)
	}
	return nil
}

// IsValidKind reports whether kind is a supported account kind
func IsValidKind(kind string) bool {
	return kind == KindCash || kind == KindBank
}
