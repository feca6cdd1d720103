package goal

import (
	"errors"
	"fmt"
	"time"
)

const (
	StatusActive   = "active"
	StatusDone     = "done"
	StatusArchived = "archived"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrForbidden         = errors.New("goal does not belong to user")
	ErrZeroDelta         = errors.New("delta must be non-zero")
	ErrInsufficientFunds = errors.New("not enough saved to withdraw")
	ErrInvalidStatus     = errors.New("invalid goal status")
	ErrGoalNotActive     = errors.New("goal is not active")
	ErrInvalidInput      = errors.New("invalid goal input")
)

// Goal is a savings target. CurrentAmount is always kept inside
// [0, TargetAmount]; money moves in and out through goal transfer
// transactions.
type Goal struct {
	ID            string     `json:"id"`
	BudgetID      string     `json:"budgetId"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	TargetAmount  int64      `json:"targetAmount"`
	CurrentAmount int64      `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CreateParams contains parameters for creating a goal
type CreateParams struct {
	BudgetID     string
	UserID       string
	Title        string
	TargetAmount int64
	Deadline     *time.Time
}

// Validate validates the goal creation parameters
func (p CreateParams) Validate() error {
	if p.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", ErrInvalidInput)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: goal title is required", ErrInvalidInput)
	}
	if p.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
	}
	return nil
}

// UpdateParams contains the mutable fields of a goal. Nil fields are
// left unchanged.
type UpdateParams struct {
	Title         *string
	TargetAmount  *int64
	CurrentAmount *int64
	Deadline      *time.Time
	Status        *string
}

// AdjustParams describes a deposit into or withdrawal from a goal
type AdjustParams struct {
	GoalID    string
	BudgetID  string
	UserID    string
	AccountID string
	Delta     int64
	Note      string
	Date      time.Time
}

// AdjustResult reports what an adjustment actually did. AppliedDelta
// can be smaller than requested when the target clamps it; zero means
// the goal was already at its limit.
type AdjustResult struct {
	Applied      bool  `json:"applied"`
	AppliedDelta int64 `json:"appliedDelta"`
	Goal         *Goal `json:"goal"`
}
