package notification

import (
	"context"

	"slotbook/models"

	"go.uber.org/zap"
)

// Notifier delivers appointment reminders to clients.
type Notifier interface {
	SendReminder(ctx context.Context, b models.Booking) error
}

// LogNotifier writes reminders to the structured log. Real delivery
// channels plug in behind Notifier.
type LogNotifier struct {
	Logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) SendReminder(_ context.Context, b models.Booking) error {
	n.Logger.Info("Appointment reminder",
		zap.String("bookingID", b.ID.Hex()),
		zap.String("providerID", b.ProviderID.String()),
		zap.String("clientEmail", b.ClientEmail),
		zap.String("date", b.Date),
		zap.String("startTime", b.StartTime),
	)
	return nil
}
