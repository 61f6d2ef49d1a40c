package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "slotbook/database/repository/booking"
	providerRepo "slotbook/database/repository/provider"
	"slotbook/models"
	"slotbook/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProviders struct {
	byID map[models.ProviderID]*models.Provider
}

func (f *fakeProviders) GetByID(_ context.Context, id models.ProviderID) (*models.Provider, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeBookings struct {
	rows      map[primitive.ObjectID]models.Booking
	createErr error
	deleted   []primitive.ObjectID
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{rows: map[primitive.ObjectID]models.Booking{}}
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBookings) Update(_ context.Context, b *models.Booking, expected models.BookingStatus) error {
	stored, ok := f.rows[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Status != expected {
		return bookingRepo.ErrStale
	}
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, ok := f.rows[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBookings) GetByCancellationToken(_ context.Context, token string) (*models.Booking, error) {
	for _, b := range f.rows {
		if b.CancellationToken == token {
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookings) ListByProviderAndDate(_ context.Context, pid models.ProviderID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.rows {
		if b.ProviderID.Equal(pid) && b.Date == date && b.Active() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) ListByProviderRange(_ context.Context, pid models.ProviderID, from, to string, includeCancelled bool) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.rows {
		if b.ProviderID.Equal(pid) && b.Date >= from && b.Date <= to && (includeCancelled || b.Active()) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) NormalizeProviderIDs(context.Context) (int64, error) { return 0, nil }

func (f *fakeBookings) EnsureIndexes(context.Context) error { return nil }

type fakeLocker struct {
	busy     bool
	acquired int
	released int
}

func (l *fakeLocker) Acquire(_ context.Context, _ string) (func(), error) {
	if l.busy {
		return nil, ErrLockBusy
	}
	l.acquired++
	return func() { l.released++ }, nil
}

// interleavingLocker runs before once, ahead of the first Acquire, to model a
// request that slips in between a caller's read and its lock.
type interleavingLocker struct {
	fakeLocker
	before func()
}

func (l *interleavingLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if hook := l.before; hook != nil {
		l.before = nil
		hook()
	}
	return l.fakeLocker.Acquire(ctx, key)
}

type fakeReminders struct {
	err       error
	scheduled []models.Booking
}

func (r *fakeReminders) ScheduleReminder(_ context.Context, b models.Booking) error {
	if r.err != nil {
		return r.err
	}
	r.scheduled = append(r.scheduled, b)
	return nil
}

type fixture struct {
	svc       *DefaultBookingService
	provider  *models.Provider
	bookings  *fakeBookings
	locker    *fakeLocker
	reminders *fakeReminders
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	provider := &models.Provider{
		ID:   models.NewProviderID(),
		Name: "Dr. Rivera",
		WeeklyAvailability: []models.WeeklyAvailabilityEntry{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		},
		BlockedRanges: []models.BlockedRange{
			{ID: "lunch", FromDate: "2026-10-19", ToDate: "2026-10-19", StartTime: "11:00", EndTime: "12:00"},
		},
		Offerings: []models.Offering{
			{ID: "consult", Name: "Consultation", DurationMinutes: 60, BreakMinutes: 0},
		},
	}
	f := &fixture{
		provider:  provider,
		bookings:  newFakeBookings(),
		locker:    &fakeLocker{},
		reminders: &fakeReminders{},
	}
	providers := &fakeProviders{byID: map[models.ProviderID]*models.Provider{provider.ID: provider}}
	f.svc = NewDefaultBookingService(providers, f.bookings, f.locker, f.reminders, time.UTC, 31)
	f.svc.Clock = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return f
}

func request(date, start string) models.BookingRequest {
	return models.BookingRequest{
		OfferingID:  "consult",
		ClientName:  "Ana",
		ClientEmail: "ana@example.com",
		Date:        date,
		StartTime:   start,
	}
}

func TestCreateBookingDerivesEndTimeAndSchedulesReminder(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	assert.Equal(t, "10:00", b.EndTime)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.NotEmpty(t, b.CancellationToken)
	assert.Contains(t, f.bookings.rows, b.ID)
	require.Len(t, f.reminders.scheduled, 1)
	assert.Equal(t, b.ID, f.reminders.scheduled[0].ID)
	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	req := request("2026-10-19", "09:30")
	req.EndTime = "10:30"
	_, err = f.svc.CreateBooking(ctx, f.provider.ID.String(), req)
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
	assert.Len(t, f.bookings.rows, 1)
}

func TestCreateBookingRejectsBlockedRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), f.provider.ID.String(), request("2026-10-19", "11:00"))
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
	assert.Empty(t, f.bookings.rows)
}

func TestCreateBookingRollsBackWhenReminderFails(t *testing.T) {
	f := newFixture(t)
	f.reminders.err = errors.New("queue down")

	_, err := f.svc.CreateBooking(context.Background(), f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.Error(t, err)
	assert.Empty(t, f.bookings.rows)
	assert.Len(t, f.bookings.deleted, 1)
}

func TestCreateBookingMapsDuplicateToSlotUnavailable(t *testing.T) {
	f := newFixture(t)
	f.bookings.createErr = bookingRepo.ErrDuplicate

	_, err := f.svc.CreateBooking(context.Background(), f.provider.ID.String(), request("2026-10-19", "09:00"))
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
}

func TestCreateBookingLockBusy(t *testing.T) {
	f := newFixture(t)
	f.locker.busy = true

	_, err := f.svc.CreateBooking(context.Background(), f.provider.ID.String(), request("2026-10-19", "09:00"))
	assert.ErrorIs(t, err, ErrLockBusy)
}

func TestCreateBookingInputErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, "not-an-id", request("2026-10-19", "09:00"))
	assert.ErrorIs(t, err, scheduling.ErrInvalidProviderID)

	_, err = f.svc.CreateBooking(ctx, models.NewProviderID().String(), request("2026-10-19", "09:00"))
	assert.ErrorIs(t, err, providerRepo.ErrNotFound)

	req := request("2026-10-19", "09:00")
	req.OfferingID = "massage"
	_, err = f.svc.CreateBooking(ctx, f.provider.ID.String(), req)
	assert.ErrorIs(t, err, ErrOfferingNotFound)

	_, err = f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-16", "09:00"))
	assert.ErrorIs(t, err, scheduling.ErrInvalidRange)

	_, err = f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "9am"))
	assert.ErrorIs(t, err, scheduling.ErrInvalidFormat)

	// a 60 minute session starting at 23:00 would end at 24:00
	_, err = f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "23:00"))
	assert.ErrorIs(t, err, scheduling.ErrInvalidRange)
	assert.Empty(t, f.bookings.rows)
}

func TestGetAvailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "10:00"))
	require.NoError(t, err)

	slots, err := f.svc.GetAvailableSlots(ctx, f.provider.ID.String(), "", "2026-10-18", "2026-10-19")
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, models.SlotAvailable, slots[0].Status)
	assert.Equal(t, models.SlotBooked, slots[1].Status)
	assert.Equal(t, models.SlotBlocked, slots[2].Status)
}

func TestGetAvailableSlotsRangeChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.provider.ID.String()

	_, err := f.svc.GetAvailableSlots(ctx, pid, "consult", "2026-10-20", "2026-10-19")
	assert.ErrorIs(t, err, scheduling.ErrInvalidRange)

	_, err = f.svc.GetAvailableSlots(ctx, pid, "consult", "2026-10-01", "2026-12-01")
	assert.ErrorIs(t, err, scheduling.ErrInvalidRange)

	_, err = f.svc.GetAvailableSlots(ctx, pid, "consult", "2026/10/19", "2026-10-19")
	assert.ErrorIs(t, err, scheduling.ErrInvalidFormat)

	slots, err := f.svc.GetAvailableSlots(ctx, pid, "consult", "2026-10-20", "2026-10-20")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestRescheduleKeepsIdentityAndToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	moved, err := f.svc.RescheduleBooking(ctx, f.provider.ID, b.ID.Hex(), models.RescheduleRequest{
		Date: "2026-10-26", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, b.ID, moved.ID)
	assert.Equal(t, b.CancellationToken, moved.CancellationToken)
	assert.Equal(t, "2026-10-26", f.bookings.rows[b.ID].Date)
	assert.Len(t, f.reminders.scheduled, 2)

	assert.Equal(t, 2, f.locker.released)

	_, err = f.svc.RescheduleBooking(ctx, f.provider.ID, "zzz", models.RescheduleRequest{})
	assert.ErrorIs(t, err, ErrInvalidBookingID)

	_, err = f.svc.RescheduleBooking(ctx, models.NewProviderID(), b.ID.Hex(), models.RescheduleRequest{
		Date: "2026-10-26", StartTime: "11:00", EndTime: "12:00",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRescheduleByToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	moved, err := f.svc.RescheduleByToken(ctx, b.CancellationToken, models.RescheduleRequest{
		Date: "2026-10-19", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", f.bookings.rows[b.ID].StartTime)
	assert.Equal(t, b.ID, moved.ID)

	_, err = f.svc.RescheduleByToken(ctx, "unknown", models.RescheduleRequest{
		Date: "2026-10-19", StartTime: "09:00", EndTime: "10:00",
	})
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)
}

func TestCancelDuringRescheduleIsNotUndone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	f.svc.Locker = &interleavingLocker{before: func() {
		_, err := f.svc.CancelByToken(ctx, b.CancellationToken)
		require.NoError(t, err)
	}}

	_, err = f.svc.RescheduleBooking(ctx, f.provider.ID, b.ID.Hex(), models.RescheduleRequest{
		Date: "2026-10-19", StartTime: "10:00", EndTime: "11:00",
	})
	assert.ErrorIs(t, err, scheduling.ErrInvalidTransition)

	stored := f.bookings.rows[b.ID]
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)
	assert.Equal(t, "09:00", stored.StartTime)
}

func TestStaleWriteMapsToInvalidTransition(t *testing.T) {
	assert.ErrorIs(t, storeErr(bookingRepo.ErrStale), scheduling.ErrInvalidTransition)
	assert.ErrorIs(t, storeErr(bookingRepo.ErrDuplicate), scheduling.ErrSlotUnavailable)

	other := errors.New("mongo down")
	assert.Equal(t, other, storeErr(other))
}

func TestCancelFlows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelByToken(ctx, b.CancellationToken)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = f.svc.CancelBooking(ctx, f.provider.ID, b.ID.Hex())
	assert.ErrorIs(t, err, scheduling.ErrInvalidTransition)

	_, err = f.svc.CancelByToken(ctx, "unknown")
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)

	// the freed slot can be booked again
	_, err = f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	assert.NoError(t, err)
}

func TestUpdateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)

	notes := "bring referral"
	completed := models.StatusCompleted

	_, err = f.svc.UpdateBooking(ctx, models.NewProviderID(), b.ID.Hex(), models.BookingUpdateRequest{Notes: &notes})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.UpdateBooking(ctx, f.provider.ID, b.ID.Hex(), models.BookingUpdateRequest{Notes: &notes, Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, notes, f.bookings.rows[b.ID].Notes)

	_, err = f.svc.UpdateBooking(ctx, f.provider.ID, b.ID.Hex(), models.BookingUpdateRequest{Status: &completed})
	assert.ErrorIs(t, err, scheduling.ErrInvalidTransition)

	later := "follow-up booked"
	updated, err = f.svc.UpdateBooking(ctx, f.provider.ID, b.ID.Hex(), models.BookingUpdateRequest{Notes: &later})
	require.NoError(t, err)
	assert.Equal(t, later, updated.Notes)
}

func TestListBookingsIncludesCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), request("2026-10-19", "09:00"))
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, models.NewProviderID(), b.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.CancelBooking(ctx, f.provider.ID, b.ID.Hex())
	require.NoError(t, err)

	list, err := f.svc.ListBookings(ctx, f.provider.ID.String(), "2026-10-19", "2026-10-19")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusCancelled, list[0].Status)
}

func TestCreatedBookingRoundTrips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := request("2026-10-19", "09:00")
	req.EndTime = "09:45"
	created, err := f.svc.CreateBooking(ctx, f.provider.ID.String(), req)
	require.NoError(t, err)

	fetched, err := f.svc.GetBooking(ctx, f.provider.ID, created.ID.Hex())
	require.NoError(t, err)

	byToken, err := f.svc.GetBookingByToken(ctx, created.CancellationToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byToken.ID)

	_, err = f.svc.GetBooking(ctx, models.NewProviderID(), created.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "2026-10-19", fetched.Date)
	assert.Equal(t, "09:00", fetched.StartTime)
	assert.Equal(t, "09:45", fetched.EndTime)
	assert.Equal(t, models.StatusConfirmed, fetched.Status)
	assert.True(t, fetched.ProviderID.Equal(f.provider.ID))
}
