package models

// WeeklyAvailabilityEntry is one recurring window a provider is open on a given weekday.
type WeeklyAvailabilityEntry struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM", strictly after StartTime
}

// BlockedRange removes availability from (FromDate, StartTime) through (ToDate, EndTime).
type BlockedRange struct {
	ID        string `bson:"id" json:"id"`
	FromDate  string `bson:"fromDate" json:"fromDate"` // "YYYY-MM-DD"
	ToDate    string `bson:"toDate" json:"toDate"`     // "YYYY-MM-DD", >= FromDate
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Reason    string `bson:"reason,omitempty" json:"reason,omitempty"`

	// Date is the legacy single-day form; Normalize folds it into FromDate/ToDate.
	Date string `bson:"date,omitempty" json:"date,omitempty"`
}

// Normalize returns the range in its two-date form.
func (b BlockedRange) Normalize() BlockedRange {
	if b.Date != "" {
		if b.FromDate == "" {
			b.FromDate = b.Date
		}
		if b.ToDate == "" {
			b.ToDate = b.Date
		}
		b.Date = ""
	}
	return b
}

// Covers reports whether date falls inside [FromDate, ToDate]. Dates are
// zero-padded ISO strings so lexical order is calendar order.
func (b BlockedRange) Covers(date string) bool {
	n := b.Normalize()
	return n.FromDate <= date && date <= n.ToDate
}
