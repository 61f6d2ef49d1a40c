package handlers

import (
	"net/http"

	"slotbook/services/booking"
	"slotbook/services/provider"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public booking endpoints; existing bookings are reached by cancellation token
	GetSlots          gin.HandlerFunc
	CreateBooking     gin.HandlerFunc
	GetBookingByToken gin.HandlerFunc
	RescheduleByToken gin.HandlerFunc
	CancelByToken     gin.HandlerFunc

	// Provider endpoints
	RegisterProvider   gin.HandlerFunc
	GetProvider        gin.HandlerFunc
	SetAvailability    gin.HandlerFunc
	AddBlockedRange    gin.HandlerFunc
	RemoveBlockedRange gin.HandlerFunc
	SetOfferings       gin.HandlerFunc
	ListBookings       gin.HandlerFunc
	GetBooking         gin.HandlerFunc
	RescheduleBooking  gin.HandlerFunc
	CancelBooking      gin.HandlerFunc
	UpdateBooking      gin.HandlerFunc

	Health gin.HandlerFunc
}

func NewHandlerBundle(bookingSvc booking.BookingService, providerSvc provider.ProviderService) *HandlerBundle {
	bh := &BookingHandler{Service: bookingSvc}
	ph := &ProviderHandler{Service: providerSvc}
	return &HandlerBundle{
		GetSlots:          bh.GetSlotsHandler,
		CreateBooking:     bh.CreateBookingHandler,
		GetBookingByToken: bh.GetBookingByTokenHandler,
		RescheduleByToken: bh.RescheduleByTokenHandler,
		CancelByToken:     bh.CancelByTokenHandler,

		RegisterProvider:   ph.RegisterProviderHandler,
		GetProvider:        ph.GetProviderHandler,
		SetAvailability:    ph.SetAvailabilityHandler,
		AddBlockedRange:    ph.AddBlockedRangeHandler,
		RemoveBlockedRange: ph.RemoveBlockedRangeHandler,
		SetOfferings:       ph.SetOfferingsHandler,
		ListBookings:       bh.ListBookingsHandler,
		GetBooking:         bh.GetBookingHandler,
		RescheduleBooking:  bh.RescheduleBookingHandler,
		CancelBooking:      bh.CancelBookingHandler,
		UpdateBooking:      bh.UpdateBookingHandler,

		Health: HealthHandler,
	}
}

// HealthHandler reports the last dependency snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "dependencies": status})
}
