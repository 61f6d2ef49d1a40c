package provider

import (
	"context"
	"fmt"
	"time"

	providerRepo "slotbook/database/repository/provider"
	"slotbook/models"
)

// ProviderService manages a provider's profile and schedule inputs.
type ProviderService interface {
	RegisterProvider(ctx context.Context, req models.ProviderRegistrationRequest) (*models.ProviderAuthResponse, error)
	GetProvider(ctx context.Context, id models.ProviderID) (*models.Provider, error)
	SetWeeklyAvailability(ctx context.Context, id models.ProviderID, entries []models.WeeklyAvailabilityEntry) (*models.Provider, error)
	AddBlockedRange(ctx context.Context, id models.ProviderID, r models.BlockedRange) (*models.BlockedRange, error)
	RemoveBlockedRange(ctx context.Context, id models.ProviderID, rangeID string) error
	SetOfferings(ctx context.Context, id models.ProviderID, offerings []models.Offering) (*models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	TokenTTL time.Duration
	NewID    func() string
}

func NewDefaultProviderService(repo providerRepo.ProviderRepository) (*DefaultProviderService, error) {
	if repo == nil {
		return nil, fmt.Errorf("provider service initialization error: repository is nil")
	}
	return &DefaultProviderService{
		Repo:     repo,
		TokenTTL: 30 * 24 * time.Hour,
		NewID:    newID,
	}, nil
}
