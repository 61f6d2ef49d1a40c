package handlers

import (
	"errors"
	"net/http"

	bookingRepo "slotbook/database/repository/booking"
	providerRepo "slotbook/database/repository/provider"
	"slotbook/services/booking"
	"slotbook/services/provider"
	"slotbook/services/scheduling"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service and engine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var se *scheduling.Error
	switch {
	case errors.As(err, &se):
		utils.JSONError(c, schedulingStatus(se.Code), se.Code, "Request rejected", err.Error())
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", "Booking not found", "")
	case errors.Is(err, providerRepo.ErrBlockedRangeNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", "Blocked range not found", "")
	case errors.Is(err, providerRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", "Provider not found", "")
	case errors.Is(err, booking.ErrOfferingNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", "Offering not found", err.Error())
	case errors.Is(err, booking.ErrInvalidBookingID):
		utils.JSONError(c, http.StatusBadRequest, "invalidBookingId", "Invalid booking id", err.Error())
	case errors.Is(err, booking.ErrLockBusy):
		utils.JSONError(c, http.StatusConflict, "busy", "Another booking for this provider is in progress, retry shortly", "")
	case errors.Is(err, booking.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", "Booking belongs to another provider", "")
	case errors.Is(err, providerRepo.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "emailTaken", "Email already registered", "")
	case errors.Is(err, provider.ErrDuplicateOffering):
		utils.JSONError(c, http.StatusBadRequest, "duplicateOffering", "Offering ids must be unique", "")
	default:
		getLogger(c).Error("Unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal", "Internal Server Error", "")
	}
}

func schedulingStatus(code string) int {
	switch code {
	case scheduling.CodeSlotUnavailable:
		return http.StatusConflict
	case scheduling.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalidInput", "Invalid input", err.Error())
}
