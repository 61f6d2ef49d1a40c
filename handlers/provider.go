package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/provider"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves profile and schedule-configuration endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

// RegisterProviderHandler handles POST /api/providers.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var req models.ProviderRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.Service.RegisterProvider(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetProviderHandler handles GET /api/providers/:providerID.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := h.Service.GetProvider(c.Request.Context(), authProviderID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SetAvailabilityHandler handles PUT /api/providers/:providerID/availability.
func (h *ProviderHandler) SetAvailabilityHandler(c *gin.Context) {
	var req models.WeeklyAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Service.SetWeeklyAvailability(c.Request.Context(), authProviderID(c), req.Entries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddBlockedRangeHandler handles POST /api/providers/:providerID/blocked.
func (h *ProviderHandler) AddBlockedRangeHandler(c *gin.Context) {
	var req models.BlockedRange
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := h.Service.AddBlockedRange(c.Request.Context(), authProviderID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// RemoveBlockedRangeHandler handles DELETE /api/providers/:providerID/blocked/:blockID.
func (h *ProviderHandler) RemoveBlockedRangeHandler(c *gin.Context) {
	if err := h.Service.RemoveBlockedRange(c.Request.Context(), authProviderID(c), c.Param("blockID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetOfferingsHandler handles PUT /api/providers/:providerID/offerings.
func (h *ProviderHandler) SetOfferingsHandler(c *gin.Context) {
	var req models.OfferingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Service.SetOfferings(c.Request.Context(), authProviderID(c), req.Offerings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
