package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slotbook/models"
	"slotbook/services/scheduling"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the reminder task for b, due at fireAt.
func NewReminderTask(b models.Booking, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	payload := models.ReminderPayload{
		BookingID: b.ID.Hex(),
		Date:      b.Date,
		StartTime: b.StartTime,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, data)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload)),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

func reminderTaskID(p models.ReminderPayload) string {
	return fmt.Sprintf("reminder:%s:%sT%s", p.BookingID, p.Date, p.StartTime)
}

// ParseReminderPayload decodes a reminder task payload.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler enqueues reminders Lead before each appointment.
type AsynqReminderScheduler struct {
	Client   Enqueuer
	Lead     time.Duration
	Location *time.Location
	Now      func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, lead time.Duration, loc *time.Location) *AsynqReminderScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &AsynqReminderScheduler{Client: client, Lead: lead, Location: loc, Now: time.Now}
}

// FireAt returns when the reminder for b is due and whether one is needed at all.
// Appointments already under way get none; those inside the lead window fire now.
func (s *AsynqReminderScheduler) FireAt(b models.Booking) (time.Time, bool, error) {
	day, err := scheduling.ParseDate(b.Date)
	if err != nil {
		return time.Time{}, false, err
	}
	start, err := scheduling.ToMinutes(b.StartTime)
	if err != nil {
		return time.Time{}, false, err
	}
	startsAt := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.Location).
		Add(time.Duration(start) * time.Minute)

	now := s.Now()
	if !startsAt.After(now) {
		return time.Time{}, false, nil
	}
	fireAt := startsAt.Add(-s.Lead)
	if fireAt.Before(now) {
		fireAt = now
	}
	return fireAt, true, nil
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, b models.Booking) error {
	fireAt, needed, err := s.FireAt(b)
	if err != nil || !needed {
		return err
	}
	task, opts, err := NewReminderTask(b, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", b.ID.Hex(), err)
	}
	return nil
}
