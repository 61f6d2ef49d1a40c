package models

// ReminderPayload is the queued reminder. Date and StartTime pin the
// appointment the reminder was scheduled for so a moved booking drops it.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}
