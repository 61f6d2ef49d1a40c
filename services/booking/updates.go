package booking

import (
	"context"

	"slotbook/models"
)

// UpdateBooking applies a provider's status and/or notes change to one of its bookings.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, providerID models.ProviderID, bookingID string, req models.BookingUpdateRequest) (*models.Booking, error) {
	b, err := s.ownedBooking(ctx, providerID, bookingID)
	if err != nil {
		return nil, err
	}
	if req.Status == nil && req.Notes == nil {
		return b, nil
	}

	current, release, err := s.lockBooking(ctx, b)
	if err != nil {
		return nil, err
	}
	defer release()

	updated := *current
	if req.Status != nil {
		if updated, err = s.Mutator.UpdateStatus(updated, *req.Status); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		updated = s.Mutator.UpdateNotes(updated, *req.Notes)
	}

	if err := s.Bookings.Update(ctx, &updated, current.Status); err != nil {
		return nil, storeErr(err)
	}
	return &updated, nil
}
