package goal

import (
	"context"
	"fmt"
	"time"

	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/transaction"
)

// TransactionCreator posts the goal transfer transactions that move
// money behind an adjustment
type TransactionCreator interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

// Service handles goal business logic
type Service struct {
	repo         Repository
	transactions TransactionCreator
	auth         budget.Authorizer
}

// NewService creates a new goal service
func NewService(repo Repository, transactions TransactionCreator, auth budget.Authorizer) *Service {
	return &Service{repo: repo, transactions: transactions, auth: auth}
}

// Create creates a goal in a budget the user owns
func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ctx, params.UserID, params.BudgetID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// ListByBudget lists the goals in a budget the user owns
func (s *Service) ListByBudget(ctx context.Context, userID, budgetID string) ([]Goal, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, budgetID)
}

// Update edits goal fields. The saved amount is clamped to the
// target so direct edits cannot overfill a goal. Done and archived
// are terminal: once there, the status cannot change again.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Goal, error) {
	goal, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Status != nil {
		switch *params.Status {
		case StatusActive, StatusDone, StatusArchived:
		default:
			return nil, ErrInvalidStatus
		}
		if goal.Status != StatusActive && *params.Status != goal.Status {
			return nil, ErrInvalidStatus
		}
	}

	nextTarget := goal.TargetAmount
	if params.TargetAmount != nil {
		nextTarget = *params.TargetAmount
	}
	nextCurrent := goal.CurrentAmount
	if params.CurrentAmount != nil {
		nextCurrent = *params.CurrentAmount
	}
	if nextCurrent > nextTarget {
		clamped := nextTarget
		params.CurrentAmount = &clamped
	}

	return s.repo.Update(ctx, id, params)
}

// Delete removes a goal the user owns
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Adjust deposits into or withdraws from a goal. The applied change
// is clamped so the saved amount stays inside [0, target]; the money
// itself moves through a goal transfer transaction against the given
// account, so the ledger and the goal stay in step.
func (s *Service) Adjust(ctx context.Context, params AdjustParams) (*AdjustResult, error) {
	if params.Delta == 0 {
		return nil, ErrZeroDelta
	}
	goal, err := s.getOwned(ctx, params.UserID, params.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.BudgetID != params.BudgetID {
		return nil, ErrGoalNotFound
	}
	if goal.Status != StatusActive {
		return nil, ErrGoalNotActive
	}
	if params.Delta < 0 && -params.Delta > goal.CurrentAmount {
		return nil, ErrInsufficientFunds
	}

	next := clamp(goal.CurrentAmount+params.Delta, 0, goal.TargetAmount)
	appliedDelta := next - goal.CurrentAmount
	if appliedDelta == 0 {
		return &AdjustResult{Applied: false, AppliedDelta: 0, Goal: goal}, nil
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	// A deposit leaves the account, so it books as an expense; a
	// withdrawal comes back as income.
	txType := transaction.TypeExpense
	if appliedDelta < 0 {
		txType = transaction.TypeIncome
	}
	amount := appliedDelta
	if amount < 0 {
		amount = -amount
	}
	note := fmt.Sprintf("Goal: %s (%+d)", goal.Title, appliedDelta)
	if params.Note != "" {
		note = fmt.Sprintf("%s: %s", note, params.Note)
	}
	tag := transaction.TagOneTime

	_, err = s.transactions.Create(ctx, transaction.CreateParams{
		BudgetID:  params.BudgetID,
		UserID:    params.UserID,
		Date:      date,
		Type:      txType,
		Kind:      transaction.KindGoalTransfer,
		Amount:    amount,
		AccountID: &params.AccountID,
		GoalID:    &goal.ID,
		Tag:       &tag,
		Note:      note,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, goal.ID, UpdateParams{CurrentAmount: &next})
	if err != nil {
		return nil, err
	}
	return &AdjustResult{Applied: true, AppliedDelta: appliedDelta, Goal: updated}, nil
}

func (s *Service) getOwned(ctx context.Context, userID, id string) (*Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}
	if err := s.auth.Authorize(ctx, userID, goal.BudgetID); err != nil {
		return nil, err
	}
	return goal, nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
