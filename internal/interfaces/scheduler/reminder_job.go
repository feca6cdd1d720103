package scheduler

import (
	"context"
	"fmt"
	"log"

	"kopilka/internal/domain/user"
	"kopilka/internal/infrastructure/telegram"
)

const reminderText = "Не забудь записать траты за сегодня и свериться с балансом 💰"

// ReminderJob sends the daily reconciliation reminder to one user
type ReminderJob struct {
	user user.User
	bot  telegram.ClientInterface
}

// NewReminderJob creates a reminder job for a user
func NewReminderJob(u user.User, bot telegram.ClientInterface) *ReminderJob {
	return &ReminderJob{user: u, bot: bot}
}

// Execute sends the reminder through the bot. A blocked bot is an
// error for this job only; the pool moves on to the next user.
func (j *ReminderJob) Execute(ctx context.Context) error {
	if err := j.bot.SendMessage(ctx, j.user.TelegramID, reminderText); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// UserID returns the user ID associated with this job
func (j *ReminderJob) UserID() string {
	return j.user.ID
}

// Description returns a human-readable description of the job
func (j *ReminderJob) Description() string {
	return fmt.Sprintf("Daily reminder for telegram user %d", j.user.TelegramID)
}

// ReminderJobProvider builds one reminder job per registered user.
// Wired as the scheduler's job provider.
func ReminderJobProvider(users *user.Service, bot telegram.ClientInterface) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		all, err := users.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users for reminders: %w", err)
		}

		jobs := make([]Job, 0, len(all))
		for _, u := range all {
			jobs = append(jobs, NewReminderJob(u, bot))
		}
		log.Printf("Reminder provider: %d users to notify", len(jobs))
		return jobs, nil
	}
}
