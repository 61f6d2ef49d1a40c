package booking

import "errors"

var (
	// ErrLockBusy means another write for the same provider holds the lock.
	ErrLockBusy = errors.New("another booking for this provider is in progress")
	// ErrInvalidBookingID is returned for booking IDs that are not ObjectID hex.
	ErrInvalidBookingID = errors.New("malformed booking id")
	// ErrOfferingNotFound is returned when the requested offering is unknown to the provider.
	ErrOfferingNotFound = errors.New("offering not found")
	// ErrForbidden is returned when a provider acts on another provider's booking.
	ErrForbidden = errors.New("booking belongs to another provider")
)
