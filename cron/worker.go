package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/config"
	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/services/notification"
	"slotbook/services/tasks"
	"slotbook/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BookingGetter is the slice of the booking store the worker reads.
type BookingGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
}

// QueueRedisOpt is the asynq connection on REDIS_QUEUE_DB.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitReminderWorker(bookings BookingGetter, notifier notification.Notifier) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, NewReminderHandler(bookings, notifier))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Reminder worker max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// NewReminderHandler re-reads the booking and only notifies when it still
// holds the appointment the reminder was queued for.
func NewReminderHandler(bookings BookingGetter, notifier notification.Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		id, err := primitive.ObjectIDFromHex(p.BookingID)
		if err != nil {
			return fmt.Errorf("invalid booking id %q: %w", p.BookingID, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, id)
		if errors.Is(err, bookingRepo.ErrNotFound) {
			logger.Info("Reminder dropped, booking gone", zap.String("bookingID", p.BookingID))
			return nil
		}
		if err != nil {
			return err
		}

		if b.Status != models.StatusConfirmed || b.Date != p.Date || b.StartTime != p.StartTime {
			logger.Info("Reminder dropped, booking changed",
				zap.String("bookingID", p.BookingID),
				zap.String("status", string(b.Status)),
				zap.String("date", b.Date),
				zap.String("startTime", b.StartTime))
			return nil
		}

		if err := notifier.SendReminder(ctx, *b); err != nil {
			logger.Error("Failed to send reminder", zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
