package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vitalsync/vitalsync/internal/store"
)

// ReminderWorker runs the periodic scan for reminders that have come due.
// Delivery here means flipping the notified flag; push channels (email,
// mobile) hang off that flag and are out of scope for the worker.
type ReminderWorker struct {
	reminders *store.ReminderStore
}

func NewReminderWorker(reminders *store.ReminderStore) *ReminderWorker {
	return &ReminderWorker{reminders: reminders}
}

func (w *ReminderWorker) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	due, err := w.reminders.ListDue(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, r := range due {
		if err := w.reminders.MarkNotified(ctx, r.ID); err != nil {
			slog.Error("failed to mark reminder notified", "reminder", r.ID.Hex(), "error", err)
			continue
		}
		slog.Info("reminder due", "reminder", r.ID.Hex(), "user", r.UserID, "title", r.Title)
	}

	return nil
}
