package reconcile

import (
	"errors"
	"time"
)

// Tolerance is the largest absolute difference between the two views
// still considered reconciled. One unit absorbs rounding at the
// minor-unit boundary.
const Tolerance = 1

const (
	FieldCash = "cash_total"
	FieldBank = "bank_total"
)

var (
	ErrNegativeBalance   = errors.New("adjustment would make a balance negative")
	ErrUnknownField      = errors.New("unknown adjustment field")
	ErrNoMatchingAccount = errors.New("no account matches the adjusted field")
)

// Result compares the snapshot view of a day against its recorded
// transactions
type Result struct {
	Date        time.Time `json:"date"`
	BottomTotal int64     `json:"bottomTotal"`
	TopTotal    int64     `json:"topTotal"`
	Diff        int64     `json:"diff"`
	IsOK        bool      `json:"isOk"`
}

// Suggestion is one corrective adjustment. Delta is the signed change
// to the named snapshot field; applying it replaces the field value,
// so the same suggestion applied twice has no further effect.
type Suggestion struct {
	Field    string `json:"field"`
	Delta    int64  `json:"delta"`
	NewValue int64  `json:"newValue"`
}
