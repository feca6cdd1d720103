package budget

import (
	"errors"
	"fmt"
	"time"
)

// Budget kinds
const (
	KindPersonal = "personal"
	KindBusiness = "business"
)

// Domain errors
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrForbidden      = errors.New("budget does not belong to user")
	ErrInvalidInput   = errors.New("invalid input")
)

// Budget is a top-level scope owning all financial entities for a user.
type Budget struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a new budget
type CreateParams struct {
	UserID string
	Kind   string
	Name   string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: budget name is required", ErrInvalidInput)
	}
	if !IsValidKind(p.Kind) {
		return fmt.Errorf("%w: budget kind must be personal or business", ErrInvalidInput)
	}
	return nil
}

// IsValidKind checks if the provided budget kind is valid.
func IsValidKind(kind string) bool {
	return kind == KindPersonal || kind == KindBusiness
}
