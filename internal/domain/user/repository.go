package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	UpsertByTelegram(ctx context.Context, params UpsertParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
}
