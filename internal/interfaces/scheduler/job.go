package scheduler

import "context"

// Job is a unit of work executed by the worker pool. Reminder jobs
// are the only current implementation; cleanup or digest jobs would
// slot in the same way.
type Job interface {
	// Execute runs the job. The context carries the pool's timeout
	// and cancellation.
	Execute(ctx context.Context) error

	// UserID identifies whose data the job touches, for logging.
	UserID() string

	// Description is a human-readable label used in logs.
	Description() string
}
