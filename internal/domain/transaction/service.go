package transaction

import (
	"context"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/category"
	"kopilka/internal/domain/ledger"
)

// AccountReader resolves accounts for budget membership checks
type AccountReader interface {
	GetByID(ctx context.Context, id string) (*account.Account, error)
}

// CategoryReader resolves categories for type checks
type CategoryReader interface {
	GetByID(ctx context.Context, id string) (*category.Category, error)
}

// Service handles transaction business logic
type Service struct {
	repo       Repository
	accounts   AccountReader
	categories CategoryReader
	auth       budget.Authorizer
}

// NewService creates a new transaction service
func NewService(repo Repository, accounts AccountReader, categories CategoryReader, auth budget.Authorizer) *Service {
	return &Service{repo: repo, accounts: accounts, categories: categories, auth: auth}
}

// Create validates a transaction draft and commits it together with
// the balance events it produces. Validation happens before any
// write, so a rejected draft leaves no partial state.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, params.UserID, params.BudgetID); err != nil {
		return nil, err
	}
	if err := s.checkAccount(ctx, params.BudgetID, params.AccountID); err != nil {
		return nil, err
	}
	if err := s.checkAccount(ctx, params.BudgetID, params.ToAccountID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, &params); err != nil {
		return nil, err
	}

	return s.repo.CreateWithEvents(ctx, params, buildEvents(params))
}

// GetByID retrieves a transaction owned by the user
func (s *Service) GetByID(ctx context.Context, userID, id string) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, ErrForbidden
	}
	return tx, nil
}

// ListByBudget lists transactions in a budget the user owns
func (s *Service) ListByBudget(ctx context.Context, userID, budgetID string, filter ListFilter) ([]Transaction, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, budgetID, filter)
}

// Delete removes a transaction and the balance events recorded under
// its ID in one database transaction
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteWithEvents(ctx, id)
}

func (s *Service) checkAccount(ctx context.Context, budgetID string, accountID *string) error {
	if accountID == nil {
		return nil
	}
	acc, err := s.accounts.GetByID(ctx, *accountID)
	if err != nil {
		return err
	}
	if acc.BudgetID != budgetID {
		return account.ErrAccountNotFound
	}
	return nil
}

// checkCategory verifies the category lives in the budget and that
// its declared type matches the transaction type
func (s *Service) checkCategory(ctx context.Context, params *CreateParams) error {
	if params.CategoryID == nil {
		return nil
	}
	cat, err := s.categories.GetByID(ctx, *params.CategoryID)
	if err != nil {
		return err
	}
	if cat.BudgetID != params.BudgetID {
		return category.ErrCategoryNotFound
	}
	if cat.Type != params.Type {
		return ErrCategoryTypeMismatch
	}
	return nil
}

// buildEvents derives the balance events a committed transaction
// produces. Income and expense yield one event tied to the
// transaction ID; a transfer yields one leg per account.
func buildEvents(params CreateParams) []ledger.RecordParams {
	base := ledger.RecordParams{
		BudgetID: params.BudgetID,
		UserID:   params.UserID,
		Date:     params.Date,
	}

	if params.Type == TypeTransfer {
		from, to := base, base
		from.AccountID = *params.AccountID
		from.Delta = -params.Amount
		from.Reason = ledger.ReasonTransfer
		to.AccountID = *params.ToAccountID
		to.Delta = params.Amount
		to.Reason = ledger.ReasonTransfer
		return []ledger.RecordParams{from, to}
	}

	event := base
	event.AccountID = *params.AccountID
	event.Delta = params.Amount
	if params.Type == TypeExpense {
		event.Delta = -params.Amount
	}
	if params.Kind == KindGoalTransfer {
		event.Reason = ledger.ReasonGoalTransfer
	} else {
		event.Reason = ledger.ReasonTransaction
	}
	return []ledger.RecordParams{event}
}
