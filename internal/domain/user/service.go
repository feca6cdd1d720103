package user

import "context"

// Service handles user business logic
type Service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login upserts the Telegram identity and returns the stored user.
// Username and name fields are refreshed on every call so profile
// renames propagate without a separate sync.
func (s *Service) Login(ctx context.Context, params UpsertParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertByTelegram(ctx, params)
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns every registered user. Used by the reminder
// scheduler to fan out notifications.
func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}
