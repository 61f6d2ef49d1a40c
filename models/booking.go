package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
	StatusNoShow    BookingStatus = "NoShow"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Booking represents an accepted appointment.
type Booking struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProviderID        ProviderID         `bson:"providerId" json:"providerId"` // stored as ObjectID; legacy rows hold the hex string
	OfferingID        string             `bson:"offeringId,omitempty" json:"offeringId,omitempty"`
	ClientName        string             `bson:"clientName" json:"clientName"`
	ClientEmail       string             `bson:"clientEmail" json:"clientEmail"`
	Date              string             `bson:"date" json:"date"`           // "YYYY-MM-DD"
	StartTime         string             `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime           string             `bson:"endTime" json:"endTime"`     // "HH:MM"
	Status            BookingStatus      `bson:"status" json:"status"`
	CancellationToken string             `bson:"cancellationToken" json:"-"` // client credential, returned only on create
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
	CancelledAt       *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// Active bookings occupy time; cancelled ones are kept only for history.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}

// BookingCreatedResponse is the create result; the only payload that carries the cancellation token.
type BookingCreatedResponse struct {
	Booking
	CancellationToken string `json:"cancellationToken"`
}

func NewBookingCreatedResponse(b Booking) BookingCreatedResponse {
	return BookingCreatedResponse{Booking: b, CancellationToken: b.CancellationToken}
}
