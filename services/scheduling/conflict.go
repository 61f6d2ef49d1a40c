package scheduling

import (
	"context"
	"fmt"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingReader is the narrow read side of the booking store the checker needs.
type BookingReader interface {
	ListByProviderAndDate(ctx context.Context, providerID models.ProviderID, date string) ([]models.Booking, error)
}

// ConflictChecker decides whether a time range on a provider's day is already taken.
type ConflictChecker struct {
	Bookings BookingReader
}

func NewConflictChecker(bookings BookingReader) *ConflictChecker {
	return &ConflictChecker{Bookings: bookings}
}

// ResolveProviderID normalizes an ObjectID or its hex form, failing with ErrInvalidProviderID.
func ResolveProviderID(v any) (models.ProviderID, error) {
	id, err := models.ParseProviderID(v)
	if err != nil {
		return models.ProviderID{}, newError(CodeInvalidProviderID, "%v", err)
	}
	return id, nil
}

// HasConflict reports whether [startTime,endTime) on date overlaps a
// non-cancelled booking of providerID. excludeID (zero for none) is skipped so a
// booking being moved never collides with itself.
func (c *ConflictChecker) HasConflict(
	ctx context.Context,
	providerID models.ProviderID,
	date, startTime, endTime string,
	excludeID primitive.ObjectID,
) (bool, error) {
	if providerID.IsZero() {
		return false, ErrInvalidProviderID
	}
	if err := ValidateDate(date); err != nil {
		return false, err
	}
	start, end, err := timeRange(startTime, endTime)
	if err != nil {
		return false, err
	}

	existing, err := c.Bookings.ListByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return false, fmt.Errorf("loading bookings for %s on %s: %w", providerID, date, err)
	}

	for _, b := range existing {
		// The store may hand back loosely matched rows; re-check everything here.
		if !b.Active() || b.Date != date || !providerID.Equal(b.ProviderID) {
			continue
		}
		if !excludeID.IsZero() && b.ID == excludeID {
			continue
		}
		bStart, bEnd, err := timeRange(b.StartTime, b.EndTime)
		if err != nil {
			return false, fmt.Errorf("booking %s has bad times: %w", b.ID.Hex(), err)
		}
		if Overlaps(start, end, bStart, bEnd) {
			return true, nil
		}
	}
	return false, nil
}
