package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves slot queries and booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// GetSlotsHandler handles GET /api/providers/:providerID/slots.
func (h *BookingHandler) GetSlotsHandler(c *gin.Context) {
	slots, err := h.Service.GetAvailableSlots(c.Request.Context(),
		c.Param("providerID"), c.Query("offeringId"), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateBookingHandler handles POST /api/providers/:providerID/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Service.CreateBooking(c.Request.Context(), c.Param("providerID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking created via API", zap.String("bookingID", b.ID.Hex()))
	c.JSON(http.StatusCreated, models.NewBookingCreatedResponse(*b))
}

// GetBookingByTokenHandler handles GET /api/bookings/token/:token.
func (h *BookingHandler) GetBookingByTokenHandler(c *gin.Context) {
	b, err := h.Service.GetBookingByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RescheduleByTokenHandler handles PUT /api/bookings/token/:token/reschedule.
func (h *BookingHandler) RescheduleByTokenHandler(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Service.RescheduleByToken(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelByTokenHandler handles POST /api/bookings/cancel/:token.
func (h *BookingHandler) CancelByTokenHandler(c *gin.Context) {
	b, err := h.Service.CancelByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingHandler handles GET /api/bookings/:bookingID for the owning provider.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), authProviderID(c), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RescheduleBookingHandler handles PUT /api/bookings/:bookingID/reschedule for the owning provider.
func (h *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Service.RescheduleBooking(c.Request.Context(), authProviderID(c), c.Param("bookingID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles POST /api/bookings/:bookingID/cancel for the owning provider.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), authProviderID(c), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler handles GET /api/providers/:providerID/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	list, err := h.Service.ListBookings(c.Request.Context(), c.Param("providerID"), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// UpdateBookingHandler handles PATCH /api/bookings/:bookingID for the authenticated provider.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var req models.BookingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Service.UpdateBooking(c.Request.Context(), authProviderID(c), c.Param("bookingID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// authProviderID reads the provider set by the auth middleware.
func authProviderID(c *gin.Context) models.ProviderID {
	if v, ok := c.Get("providerID"); ok {
		if id, ok := v.(models.ProviderID); ok {
			return id
		}
	}
	return models.ProviderID{}
}
