package models

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBlocked   SlotStatus = "blocked"
	SlotBooked    SlotStatus = "booked"
)

// Slot is a computed candidate appointment window: a bookable session plus its
// trailing break. It is never persisted.
type Slot struct {
	Date         string     `json:"date"`
	StartTime    string     `json:"startTime"` // == SessionStart
	EndTime      string     `json:"endTime"`   // == BreakEnd
	SessionStart string     `json:"sessionStart"`
	SessionEnd   string     `json:"sessionEnd"`
	BreakStart   string     `json:"breakStart"`
	BreakEnd     string     `json:"breakEnd"` // may run past the availability window
	Status       SlotStatus `json:"status"`
}
