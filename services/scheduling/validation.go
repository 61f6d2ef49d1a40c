package scheduling

import (
	"fmt"

	"slotbook/models"
)

// ValidateWeeklyAvailability checks every entry; the list replaces the stored one wholesale.
func ValidateWeeklyAvailability(entries []models.WeeklyAvailabilityEntry) error {
	for i, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return newError(CodeInvalidFormat, "entry %d: dayOfWeek %d outside 0-6", i, e.DayOfWeek)
		}
		if _, _, err := timeRange(e.StartTime, e.EndTime); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// ValidateBlockedRange checks formats, fromDate <= toDate, and that the span
// start strictly precedes its end.
func ValidateBlockedRange(b models.BlockedRange) error {
	b = b.Normalize()
	if err := ValidateDate(b.FromDate); err != nil {
		return err
	}
	if err := ValidateDate(b.ToDate); err != nil {
		return err
	}
	start, err := ToMinutes(b.StartTime)
	if err != nil {
		return err
	}
	end, err := ToMinutes(b.EndTime)
	if err != nil {
		return err
	}
	if b.FromDate > b.ToDate {
		return newError(CodeInvalidRange, "fromDate %s is after toDate %s", b.FromDate, b.ToDate)
	}
	if b.FromDate == b.ToDate && start >= end {
		return newError(CodeInvalidRange, "start %s must be before end %s", b.StartTime, b.EndTime)
	}
	return nil
}

func ValidateOffering(o models.Offering) error {
	if o.DurationMinutes < models.MinSessionMinutes || o.DurationMinutes > models.MaxSessionMinutes {
		return newError(CodeInvalidRange, "duration %d outside %d-%d minutes",
			o.DurationMinutes, models.MinSessionMinutes, models.MaxSessionMinutes)
	}
	if o.BreakMinutes < models.MinBreakMinutes || o.BreakMinutes > models.MaxBreakMinutes {
		return newError(CodeInvalidRange, "break %d outside %d-%d minutes",
			o.BreakMinutes, models.MinBreakMinutes, models.MaxBreakMinutes)
	}
	return nil
}
