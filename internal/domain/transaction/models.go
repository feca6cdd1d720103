package transaction

import (
	"errors"
	"fmt"
	"time"
)

const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

const (
	KindNormal       = "normal"
	KindGoalTransfer = "goal_transfer"
)

const (
	TagOneTime      = "one_time"
	TagSubscription = "subscription"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrForbidden            = errors.New("transaction does not belong to user")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrCategoryRequired     = errors.New("category is required for income and expense")
	ErrCategoryForbidden    = errors.New("transfers cannot have a category")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
	ErrAccountRequired      = errors.New("account is required")
	ErrSameAccount          = errors.New("transfer accounts must differ")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidInput         = errors.New("invalid transaction input")
)

// Transaction is one ledger entry. The type decides which reference
// fields are set: income and expense use AccountID and CategoryID,
// transfers use AccountID and ToAccountID with no category, and goal
// transfers additionally point at a goal.
type Transaction struct {
	ID          string    `json:"id"`
	BudgetID    string    `json:"budgetId"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	AccountID   *string   `json:"accountId,omitempty"`
	ToAccountID *string   `json:"toAccountId,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	GoalID      *string   `json:"goalId,omitempty"`
	Tag         *string   `json:"tag,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a transaction
type CreateParams struct {
	BudgetID    string
	UserID      string
	Date        time.Time
	Type        string
	Kind        string
	Amount      int64
	AccountID   *string
	ToAccountID *string
	CategoryID  *string
	GoalID      *string
	Tag         *string
	Note        string
}

// Validate checks the field shape required by the transaction type.
// Category typing is checked by the service since it needs a lookup.
func (p *CreateParams) Validate() error {
	if p.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", ErrInvalidInput)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.Kind == "" {
		p.Kind = KindNormal
	}
	if p.Kind != KindNormal && p.Kind != KindGoalTransfer {
		return fmt.Errorf("%w: invalid transaction kind", ErrInvalidInput)
	}
	if p.Tag != nil && *p.Tag != TagOneTime && *p.Tag != TagSubscription {
		return fmt.Errorf("%w: invalid transaction tag", ErrInvalidInput)
	}

	switch p.Type {
	case TypeTransfer:
		if p.AccountID == nil || p.ToAccountID == nil {
			return fmt.Errorf("%w: transfer requires both accounts", ErrInvalidInput)
		}
		if *p.AccountID == *p.ToAccountID {
			return ErrSameAccount
		}
		if p.CategoryID != nil {
			return ErrCategoryForbidden
		}
	case TypeIncome, TypeExpense:
		if p.AccountID == nil {
			return ErrAccountRequired
		}
		if p.ToAccountID != nil {
			return fmt.Errorf("%w: to account must be empty for income and expense", ErrInvalidInput)
		}
		if p.Kind == KindNormal && p.CategoryID == nil {
			return ErrCategoryRequired
		}
	default:
		return ErrInvalidType
	}

	if p.Kind == KindGoalTransfer {
		if p.GoalID == nil {
			return fmt.Errorf("%w: goal ID is required for goal transfers", ErrInvalidInput)
		}
		if p.CategoryID != nil {
			return fmt.Errorf("%w: goal transfers cannot have a category", ErrInvalidInput)
		}
	}
	return nil
}

// ListFilter narrows a transaction listing
type ListFilter struct {
	Date *time.Time
	From *time.Time
	To   *time.Time
	Type string
}
