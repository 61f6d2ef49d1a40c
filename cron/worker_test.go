package cron

import (
	"context"
	"encoding/json"
	"testing"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBookings map[primitive.ObjectID]models.Booking

func (s stubBookings) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, ok := s[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

type countingNotifier struct{ sent []models.Booking }

func (n *countingNotifier) SendReminder(_ context.Context, b models.Booking) error {
	n.sent = append(n.sent, b)
	return nil
}

func reminderTask(t *testing.T, p models.ReminderPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeSendReminder, data)
}

func TestReminderHandler(t *testing.T) {
	confirmed := models.Booking{ID: primitive.NewObjectID(), Date: "2026-10-19", StartTime: "09:00", Status: models.StatusConfirmed}
	cancelled := models.Booking{ID: primitive.NewObjectID(), Date: "2026-10-19", StartTime: "10:00", Status: models.StatusCancelled}
	store := stubBookings{confirmed.ID: confirmed, cancelled.ID: cancelled}

	cases := []struct {
		name    string
		payload models.ReminderPayload
		sent    int
	}{
		{"confirmed and unchanged", models.ReminderPayload{BookingID: confirmed.ID.Hex(), Date: "2026-10-19", StartTime: "09:00"}, 1},
		{"moved since queued", models.ReminderPayload{BookingID: confirmed.ID.Hex(), Date: "2026-10-19", StartTime: "08:00"}, 0},
		{"cancelled", models.ReminderPayload{BookingID: cancelled.ID.Hex(), Date: "2026-10-19", StartTime: "10:00"}, 0},
		{"deleted", models.ReminderPayload{BookingID: primitive.NewObjectID().Hex(), Date: "2026-10-19", StartTime: "09:00"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &countingNotifier{}
			err := NewReminderHandler(store, n)(context.Background(), reminderTask(t, tc.payload))
			require.NoError(t, err)
			assert.Len(t, n.sent, tc.sent)
		})
	}
}

func TestReminderHandlerBadPayloadSkipsRetry(t *testing.T) {
	n := &countingNotifier{}
	h := NewReminderHandler(stubBookings{}, n)

	err := h(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h(context.Background(), reminderTask(t, models.ReminderPayload{BookingID: "nope"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
