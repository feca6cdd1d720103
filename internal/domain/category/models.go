package category

import (
	"errors"
	"fmt"
	"time"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// maxDepth bounds parent chain traversal. Trees in practice are two
// or three levels deep; anything past this is treated as a cycle.
const maxDepth = 32

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTypeMismatch     = errors.New("category type does not match parent type")
	ErrCycle            = errors.New("category parent chain forms a cycle")
	ErrDuplicateName    = errors.New("category name already exists under this parent")
	ErrInvalidInput     = errors.New("invalid category input")
)

// Category is a node in a budget's income or expense tree. The type
// is fixed at creation and must match the parent's type.
type Category struct {
	ID        string    `json:"id"`
	BudgetID  string    `json:"budgetId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a category
type CreateParams struct {
	BudgetID string
	Name     string
	Type     string
	ParentID *string
}

// Validate validates the category creation parameters
func (p CreateParams) Validate() error {
	if p.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if !IsValidType(p.Type) {
		return fmt.Errorf("%w: category type must be income or expense", ErrInvalidInput)
	}
	return nil
}

// UpdateParams contains the mutable fields of a category. Nil fields
// are left unchanged; Reparent distinguishes "set parent to nil" from
// "leave parent alone".
type UpdateParams struct {
	Name     *string
	ParentID *string
	Reparent bool
}

// IsValidType reports whether t is a supported category type
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
