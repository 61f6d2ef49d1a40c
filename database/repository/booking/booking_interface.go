package bookingRepo

import (
	"context"
	"errors"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no booking document matches.
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicate is returned when a write collides with the active-slot unique index.
	ErrDuplicate = errors.New("booking already exists for this slot")
	// ErrStale is returned when the stored booking no longer has the status the write was based on.
	ErrStale = errors.New("booking was modified concurrently")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// Update replaces the booking only while its stored status is still expected.
	Update(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByCancellationToken(ctx context.Context, token string) (*models.Booking, error)
	// ListByProviderAndDate returns the provider's non-cancelled bookings on date.
	ListByProviderAndDate(ctx context.Context, providerID models.ProviderID, date string) ([]models.Booking, error)
	// ListByProviderRange returns every booking of the provider between from and to inclusive.
	ListByProviderRange(ctx context.Context, providerID models.ProviderID, from, to string, includeCancelled bool) ([]models.Booking, error)
	// NormalizeProviderIDs rewrites hex-string providerId values as ObjectIDs.
	NormalizeProviderIDs(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
