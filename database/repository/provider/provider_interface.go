package providerRepo

import (
	"context"
	"errors"

	"slotbook/models"
)

var (
	// ErrNotFound is returned when no provider document matches.
	ErrNotFound = errors.New("provider not found")
	// ErrEmailTaken is returned when another provider already uses the email.
	ErrEmailTaken = errors.New("provider email already registered")
	// ErrBlockedRangeNotFound is returned when the provider has no blocked range with the given ID.
	ErrBlockedRangeNotFound = errors.New("blocked range not found")
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its ID, whichever form it was stored in.
	GetByID(ctx context.Context, id models.ProviderID) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// ReplaceWeeklyAvailability overwrites the recurring weekly windows.
	ReplaceWeeklyAvailability(ctx context.Context, id models.ProviderID, entries []models.WeeklyAvailabilityEntry) error
	// AddBlockedRange appends a blocked range.
	AddBlockedRange(ctx context.Context, id models.ProviderID, r models.BlockedRange) error
	// RemoveBlockedRange pulls the blocked range with the given ID, or returns
	// ErrBlockedRangeNotFound when the provider has none.
	RemoveBlockedRange(ctx context.Context, id models.ProviderID, rangeID string) error
	// ReplaceOfferings overwrites the provider's offerings.
	ReplaceOfferings(ctx context.Context, id models.ProviderID, offerings []models.Offering) error
	// EnsureIndexes creates the collection indexes.
	EnsureIndexes(ctx context.Context) error
}
