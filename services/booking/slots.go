package booking

import (
	"context"
	"errors"
	"fmt"

	providerRepo "slotbook/database/repository/provider"
	"slotbook/models"
	"slotbook/services/scheduling"
)

// checkRange validates a from/to pair and enforces the configured day cap.
func (s *DefaultBookingService) checkRange(from, to string) error {
	first, err := scheduling.ParseDate(from)
	if err != nil {
		return err
	}
	last, err := scheduling.ParseDate(to)
	if err != nil {
		return err
	}
	if first.After(last) {
		return scheduling.Errorf(scheduling.CodeInvalidRange, "from %s is after to %s", from, to)
	}
	days := int(last.Sub(first).Hours()/24) + 1
	if s.MaxRangeDays > 0 && days > s.MaxRangeDays {
		return scheduling.Errorf(scheduling.CodeInvalidRange, "range of %d days exceeds the %d day limit", days, s.MaxRangeDays)
	}
	return nil
}

func (s *DefaultBookingService) loadProvider(ctx context.Context, raw string) (*models.Provider, error) {
	pid, err := scheduling.ResolveProviderID(raw)
	if err != nil {
		return nil, err
	}
	provider, err := s.Providers.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load provider %s: %w", pid, err)
	}
	return provider, nil
}

// resolveOffering picks the named offering, or the only one when none is named.
func resolveOffering(p *models.Provider, offeringID string) (*models.Offering, error) {
	if offeringID == "" {
		if len(p.Offerings) == 1 {
			return &p.Offerings[0], nil
		}
		return nil, fmt.Errorf("%w: offeringId is required", ErrOfferingNotFound)
	}
	o, ok := p.Offering(offeringID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOfferingNotFound, offeringID)
	}
	return &o, nil
}

func (s *DefaultBookingService) GetAvailableSlots(ctx context.Context, providerID, offeringID, from, to string) ([]models.Slot, error) {
	if err := s.checkRange(from, to); err != nil {
		return nil, err
	}
	provider, err := s.loadProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	offering, err := resolveOffering(provider, offeringID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.ListByProviderRange(ctx, provider.ID, from, to, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	slots, err := scheduling.CalculateAvailableSlots(
		provider.WeeklyAvailability,
		provider.BlockedRanges,
		bookings,
		from, to,
		offering.DurationMinutes,
		offering.BreakMinutes,
	)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	return slots, nil
}
