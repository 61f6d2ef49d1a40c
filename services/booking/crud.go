package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/services/scheduling"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func parseBookingID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidBookingID, raw)
	}
	return id, nil
}

// deriveEndTime fills the end time from the offering duration when the client omitted it.
func deriveEndTime(req models.BookingRequest, offering *models.Offering) (string, error) {
	if req.EndTime != "" {
		return req.EndTime, nil
	}
	start, err := scheduling.ToMinutes(req.StartTime)
	if err != nil {
		return "", err
	}
	end := start + offering.DurationMinutes
	if end >= scheduling.MinutesPerDay {
		return "", scheduling.Errorf(scheduling.CodeInvalidRange, "session starting at %s runs past midnight", req.StartTime)
	}
	return scheduling.FormatMinutes(end), nil
}

func checkNotBlocked(p *models.Provider, date, start, end string) error {
	blocked, err := scheduling.BlockedAt(p.BlockedRanges, date, start, end)
	if err != nil {
		return err
	}
	if blocked {
		return scheduling.Errorf(scheduling.CodeSlotUnavailable, "%s %s-%s falls in a blocked range", date, start, end)
	}
	return nil
}

func storeErr(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrDuplicate):
		return scheduling.Errorf(scheduling.CodeSlotUnavailable, "slot was taken concurrently")
	case errors.Is(err, bookingRepo.ErrStale):
		return scheduling.Errorf(scheduling.CodeInvalidTransition, "booking status changed concurrently")
	}
	return err
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, providerID string, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	provider, err := s.loadProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var offering *models.Offering
	if req.OfferingID != "" || req.EndTime == "" {
		if offering, err = resolveOffering(provider, req.OfferingID); err != nil {
			return nil, err
		}
	}
	endTime, err := deriveEndTime(req, offering)
	if err != nil {
		return nil, err
	}

	in := scheduling.CreateInput{
		ProviderID:  provider.ID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		Notes:       req.Notes,
	}
	if offering != nil {
		in.OfferingID = offering.ID
	}

	release, err := s.Locker.Acquire(ctx, providerLockKey(provider.ID.String()))
	if err != nil {
		return nil, err
	}
	defer release()

	b, err := s.Mutator.Create(ctx, in, s.today())
	if err != nil {
		return nil, err
	}
	if err := checkNotBlocked(provider, b.Date, b.StartTime, b.EndTime); err != nil {
		return nil, err
	}
	if err := s.Bookings.Create(ctx, &b); err != nil {
		return nil, storeErr(err)
	}

	if err := s.Reminders.ScheduleReminder(ctx, b); err != nil {
		logger.Error("Failed to schedule reminder, rolling back booking",
			zap.String("bookingID", b.ID.Hex()), zap.Error(err))
		if delErr := s.Bookings.Delete(ctx, b.ID); delErr != nil {
			logger.Error("Failed to roll back booking", zap.String("bookingID", b.ID.Hex()), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to schedule reminder: %w", err)
	}

	logger.Info("Booking created",
		zap.String("bookingID", b.ID.Hex()),
		zap.String("providerID", b.ProviderID.String()),
		zap.String("date", b.Date),
		zap.String("startTime", b.StartTime))
	return &b, nil
}

// ownedBooking loads a booking and checks it belongs to providerID.
func (s *DefaultBookingService) ownedBooking(ctx context.Context, providerID models.ProviderID, bookingID string) (*models.Booking, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.ProviderID.Equal(providerID) {
		return nil, ErrForbidden
	}
	return b, nil
}

// lockBooking takes the lock of b's provider and re-reads b under it.
// The returned release must be called once the write is done.
func (s *DefaultBookingService) lockBooking(ctx context.Context, b *models.Booking) (*models.Booking, func(), error) {
	release, err := s.Locker.Acquire(ctx, providerLockKey(b.ProviderID.String()))
	if err != nil {
		return nil, nil, err
	}
	current, err := s.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		release()
		return nil, nil, err
	}
	return current, release, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, providerID models.ProviderID, bookingID string) (*models.Booking, error) {
	return s.ownedBooking(ctx, providerID, bookingID)
}

func (s *DefaultBookingService) GetBookingByToken(ctx context.Context, token string) (*models.Booking, error) {
	return s.Bookings.GetByCancellationToken(ctx, token)
}

func (s *DefaultBookingService) reschedule(ctx context.Context, b *models.Booking, req models.RescheduleRequest) (*models.Booking, error) {
	provider, err := s.Providers.GetByID(ctx, b.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider %s: %w", b.ProviderID, err)
	}

	current, release, err := s.lockBooking(ctx, b)
	if err != nil {
		return nil, err
	}
	defer release()

	moved, err := s.Mutator.Reschedule(ctx, *current, req.Date, req.StartTime, req.EndTime, s.today())
	if err != nil {
		return nil, err
	}
	if err := checkNotBlocked(provider, moved.Date, moved.StartTime, moved.EndTime); err != nil {
		return nil, err
	}
	if err := s.Bookings.Update(ctx, &moved, current.Status); err != nil {
		return nil, storeErr(err)
	}

	// The reminder queued for the old time is dropped by the worker once it sees the move.
	if err := s.Reminders.ScheduleReminder(ctx, moved); err != nil {
		utils.GetLogger().Warn("Failed to schedule reminder for rescheduled booking",
			zap.String("bookingID", moved.ID.Hex()), zap.Error(err))
	}
	return &moved, nil
}

func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, providerID models.ProviderID, bookingID string, req models.RescheduleRequest) (*models.Booking, error) {
	b, err := s.ownedBooking(ctx, providerID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.reschedule(ctx, b, req)
}

func (s *DefaultBookingService) RescheduleByToken(ctx context.Context, token string, req models.RescheduleRequest) (*models.Booking, error) {
	b, err := s.Bookings.GetByCancellationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.reschedule(ctx, b, req)
}

func (s *DefaultBookingService) cancel(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	current, release, err := s.lockBooking(ctx, b)
	if err != nil {
		return nil, err
	}
	defer release()

	cancelled, err := s.Mutator.Cancel(*current)
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.Update(ctx, &cancelled, current.Status); err != nil {
		return nil, storeErr(err)
	}
	utils.GetLogger().Info("Booking cancelled", zap.String("bookingID", cancelled.ID.Hex()))
	return &cancelled, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, providerID models.ProviderID, bookingID string) (*models.Booking, error) {
	b, err := s.ownedBooking(ctx, providerID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, b)
}

func (s *DefaultBookingService) CancelByToken(ctx context.Context, token string) (*models.Booking, error) {
	b, err := s.Bookings.GetByCancellationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, b)
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, providerID, from, to string) ([]models.Booking, error) {
	pid, err := scheduling.ResolveProviderID(providerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRange(from, to); err != nil {
		return nil, err
	}
	return s.Bookings.ListByProviderRange(ctx, pid, from, to, true)
}
