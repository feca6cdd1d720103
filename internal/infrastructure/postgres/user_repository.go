package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kopilka/internal/domain/user"
)

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertByTelegram inserts the Telegram identity or refreshes its
// profile fields when the telegram ID is already known
func (r *UserRepository) UpsertByTelegram(ctx context.Context, params user.UpsertParams) (*user.User, error) {
	query := `
		INSERT INTO users (id, telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name
		RETURNING id, telegram_id, username, first_name, last_name, created_at
	`

	var u user.User
	var username, firstName, lastName sql.NullString

	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.TelegramID, params.Username, params.FirstName, params.LastName,
	).Scan(&u.ID, &u.TelegramID, &username, &firstName, &lastName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	u.Username = username.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByTelegramID retrieves a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name, created_at
		FROM users
		WHERE telegram_id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, telegramID))
}

// ListAll retrieves every registered user
func (r *UserRepository) ListAll(ctx context.Context) ([]user.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name, created_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var username, firstName, lastName sql.NullString
		if err := rows.Scan(&u.ID, &u.TelegramID, &username, &firstName, &lastName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Username = username.String
		u.FirstName = firstName.String
		u.LastName = lastName.String
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var username, firstName, lastName sql.NullString

	err := row.Scan(&u.ID, &u.TelegramID, &username, &firstName, &lastName, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Username = username.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	return &u, nil
}
