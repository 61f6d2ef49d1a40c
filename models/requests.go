package models

// BookingRequest is the client payload for creating a booking.
type BookingRequest struct {
	OfferingID  string `json:"offeringId"`
	ClientName  string `json:"clientName" binding:"required"`
	ClientEmail string `json:"clientEmail" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime"` // derived from the offering when empty
	Notes       string `json:"notes"`
}

// RescheduleRequest moves a booking; date and both times change together.
type RescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// BookingUpdateRequest patches notes and/or status.
type BookingUpdateRequest struct {
	Notes  *string        `json:"notes"`
	Status *BookingStatus `json:"status"`
}

type ProviderRegistrationRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type WeeklyAvailabilityRequest struct {
	Entries []WeeklyAvailabilityEntry `json:"entries"`
}

type OfferingsRequest struct {
	Offerings []Offering `json:"offerings"`
}
