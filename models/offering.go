package models

const (
	MinSessionMinutes = 15
	MaxSessionMinutes = 240
	MinBreakMinutes   = 0
	MaxBreakMinutes   = 60
)

// Offering defines the session and trailing break used to cut slots from availability.
type Offering struct {
	ID              string `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	DurationMinutes int    `bson:"durationMinutes" json:"durationMinutes"`
	BreakMinutes    int    `bson:"breakMinutes" json:"breakMinutes"`
}
