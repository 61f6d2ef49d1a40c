package booking

import (
	"context"
	"time"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/services/scheduling"
)

// BookingService is the HTTP-facing booking API. Client-facing calls are keyed
// by the cancellation token; provider-facing calls check booking ownership.
type BookingService interface {
	GetAvailableSlots(ctx context.Context, providerID, offeringID, from, to string) ([]models.Slot, error)
	CreateBooking(ctx context.Context, providerID string, req models.BookingRequest) (*models.Booking, error)

	GetBookingByToken(ctx context.Context, token string) (*models.Booking, error)
	RescheduleByToken(ctx context.Context, token string, req models.RescheduleRequest) (*models.Booking, error)
	CancelByToken(ctx context.Context, token string) (*models.Booking, error)

	GetBooking(ctx context.Context, providerID models.ProviderID, bookingID string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, providerID models.ProviderID, bookingID string, req models.RescheduleRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, providerID models.ProviderID, bookingID string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, providerID models.ProviderID, bookingID string, req models.BookingUpdateRequest) (*models.Booking, error)
	ListBookings(ctx context.Context, providerID, from, to string) ([]models.Booking, error)
}

// ProviderLookup is the slice of the provider store the booking flow reads.
type ProviderLookup interface {
	GetByID(ctx context.Context, id models.ProviderID) (*models.Provider, error)
}

// Locker serializes check-then-write sequences per key.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// ReminderScheduler enqueues the pre-appointment reminder for a booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, b models.Booking) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Providers    ProviderLookup
	Bookings     bookingRepo.BookingRepository
	Locker       Locker
	Reminders    ReminderScheduler
	Mutator      *scheduling.BookingMutator
	Clock        func() time.Time
	Location     *time.Location
	MaxRangeDays int
}

func NewDefaultBookingService(
	providers ProviderLookup,
	bookings bookingRepo.BookingRepository,
	locker Locker,
	reminders ReminderScheduler,
	loc *time.Location,
	maxRangeDays int,
) *DefaultBookingService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultBookingService{
		Providers:    providers,
		Bookings:     bookings,
		Locker:       locker,
		Reminders:    reminders,
		Mutator:      scheduling.NewBookingMutator(scheduling.NewConflictChecker(bookings)),
		Clock:        time.Now,
		Location:     loc,
		MaxRangeDays: maxRangeDays,
	}
}

// today is the current date in the provider timezone.
func (s *DefaultBookingService) today() string {
	return s.Clock().In(s.Location).Format(scheduling.DateLayout)
}
