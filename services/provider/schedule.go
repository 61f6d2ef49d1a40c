package provider

import (
	"context"

	"slotbook/models"
	"slotbook/services/scheduling"
	"slotbook/utils"

	"go.uber.org/zap"
)

// SetWeeklyAvailability replaces the recurring windows wholesale.
func (s *DefaultProviderService) SetWeeklyAvailability(ctx context.Context, id models.ProviderID, entries []models.WeeklyAvailabilityEntry) (*models.Provider, error) {
	if err := scheduling.ValidateWeeklyAvailability(entries); err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceWeeklyAvailability(ctx, id, entries); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Weekly availability replaced",
		zap.String("providerID", id.String()), zap.Int("entries", len(entries)))
	return s.Repo.GetByID(ctx, id)
}

// AddBlockedRange accepts both the ranged and the legacy single-date form.
func (s *DefaultProviderService) AddBlockedRange(ctx context.Context, id models.ProviderID, r models.BlockedRange) (*models.BlockedRange, error) {
	r = r.Normalize()
	if err := scheduling.ValidateBlockedRange(r); err != nil {
		return nil, err
	}
	r.ID = s.NewID()
	if err := s.Repo.AddBlockedRange(ctx, id, r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *DefaultProviderService) RemoveBlockedRange(ctx context.Context, id models.ProviderID, rangeID string) error {
	return s.Repo.RemoveBlockedRange(ctx, id, rangeID)
}

// SetOfferings validates and replaces the offering catalogue. Offerings without an ID get one.
func (s *DefaultProviderService) SetOfferings(ctx context.Context, id models.ProviderID, offerings []models.Offering) (*models.Provider, error) {
	seen := make(map[string]bool, len(offerings))
	for i := range offerings {
		if err := scheduling.ValidateOffering(offerings[i]); err != nil {
			return nil, err
		}
		if offerings[i].ID == "" {
			offerings[i].ID = s.NewID()
		}
		if seen[offerings[i].ID] {
			return nil, ErrDuplicateOffering
		}
		seen[offerings[i].ID] = true
	}
	if err := s.Repo.ReplaceOfferings(ctx, id, offerings); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}
