package dailystate

import (
	"context"
	"time"
)

// Repository defines the interface for daily state data operations
type Repository interface {
	GetByDate(ctx context.Context, budgetID string, date time.Time) (*State, error)
	Upsert(ctx context.Context, params UpsertParams) (*State, error)
}
