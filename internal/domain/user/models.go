package user

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid user input")
)

// User is a Telegram identity. Created (or refreshed) on every
// successful Mini App authentication.
type User struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegramId"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpsertParams contains the identity fields refreshed on login
type UpsertParams struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// Validate validates the upsert parameters
func (p UpsertParams) Validate() error {
	if p.TelegramID <= 0 {
		return fmt.Errorf("%w: valid telegram ID is required", ErrInvalidInput)
	}
	return nil
}
