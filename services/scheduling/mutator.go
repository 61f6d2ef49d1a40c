package scheduling

import (
	"context"
	"time"

	"slotbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateInput carries a validated-on-entry booking request.
type CreateInput struct {
	ProviderID  models.ProviderID
	OfferingID  string
	ClientName  string
	ClientEmail string
	Date        string
	StartTime   string
	EndTime     string
	Notes       string
}

// BookingMutator owns every legal change to a booking record. It never
// persists anything; callers store the returned value under their own
// write guard.
type BookingMutator struct {
	Conflicts *ConflictChecker
	NewToken  func() string
	Now       func() time.Time
}

func NewBookingMutator(conflicts *ConflictChecker) *BookingMutator {
	return &BookingMutator{
		Conflicts: conflicts,
		NewToken:  func() string { return uuid.New().String() },
		Now:       time.Now,
	}
}

// validateRequestedTime applies the shared create/reschedule checks. today is
// the provider-local current date.
func validateRequestedTime(date, startTime, endTime, today string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	if err := ValidateDate(today); err != nil {
		return err
	}
	if _, _, err := timeRange(startTime, endTime); err != nil {
		return err
	}
	if date < today {
		return newError(CodeInvalidRange, "date %s is in the past (today is %s)", date, today)
	}
	return nil
}

func (m *BookingMutator) Create(ctx context.Context, in CreateInput, today string) (models.Booking, error) {
	if in.ProviderID.IsZero() {
		return models.Booking{}, ErrInvalidProviderID
	}
	if err := validateRequestedTime(in.Date, in.StartTime, in.EndTime, today); err != nil {
		return models.Booking{}, err
	}

	taken, err := m.Conflicts.HasConflict(ctx, in.ProviderID, in.Date, in.StartTime, in.EndTime, primitive.NilObjectID)
	if err != nil {
		return models.Booking{}, err
	}
	if taken {
		return models.Booking{}, newError(CodeSlotUnavailable, "%s %s-%s is already booked", in.Date, in.StartTime, in.EndTime)
	}

	now := m.Now()
	return models.Booking{
		ID:                primitive.NewObjectID(),
		ProviderID:        in.ProviderID,
		OfferingID:        in.OfferingID,
		ClientName:        in.ClientName,
		ClientEmail:       in.ClientEmail,
		Date:              in.Date,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Status:            models.StatusConfirmed,
		CancellationToken: m.NewToken(),
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Reschedule moves a confirmed booking. Identity and cancellation token are kept.
func (m *BookingMutator) Reschedule(ctx context.Context, b models.Booking, date, startTime, endTime, today string) (models.Booking, error) {
	if b.Status != models.StatusConfirmed {
		return models.Booking{}, newError(CodeInvalidTransition, "cannot reschedule a %s booking", b.Status)
	}
	if err := validateRequestedTime(date, startTime, endTime, today); err != nil {
		return models.Booking{}, err
	}

	taken, err := m.Conflicts.HasConflict(ctx, b.ProviderID, date, startTime, endTime, b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if taken {
		return models.Booking{}, newError(CodeSlotUnavailable, "%s %s-%s is already booked", date, startTime, endTime)
	}

	b.Date = date
	b.StartTime = startTime
	b.EndTime = endTime
	b.UpdatedAt = m.Now()
	return b, nil
}

// Cancel is only legal from Confirmed; a second cancel is reported, not ignored.
func (m *BookingMutator) Cancel(b models.Booking) (models.Booking, error) {
	if b.Status != models.StatusConfirmed {
		return models.Booking{}, newError(CodeInvalidTransition, "cannot cancel a %s booking", b.Status)
	}
	now := m.Now()
	b.Status = models.StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	return b, nil
}

// UpdateStatus closes out a confirmed booking as Completed or NoShow.
func (m *BookingMutator) UpdateStatus(b models.Booking, target models.BookingStatus) (models.Booking, error) {
	if target != models.StatusCompleted && target != models.StatusNoShow {
		return models.Booking{}, newError(CodeInvalidTransition, "status %q cannot be set directly", target)
	}
	if b.Status != models.StatusConfirmed {
		return models.Booking{}, newError(CodeInvalidTransition, "booking is already %s", b.Status)
	}
	b.Status = target
	b.UpdatedAt = m.Now()
	return b, nil
}

// UpdateNotes replaces the free-text notes; allowed in any status.
func (m *BookingMutator) UpdateNotes(b models.Booking, notes string) models.Booking {
	b.Notes = notes
	b.UpdatedAt = m.Now()
	return b
}
