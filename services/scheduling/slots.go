package scheduling

import "slotbook/models"

// slotWindow is a generated slot in minutes since midnight.
type slotWindow struct {
	sessionStart int
	sessionEnd   int
	breakEnd     int
}

// cutWindows walks the availability window in session+break strides. Only the
// session has to fit before limit; the trailing break may overhang it.
func cutWindows(start, limit, sessionMinutes, breakMinutes int) []slotWindow {
	var out []slotWindow
	for cursor := start; cursor+sessionMinutes <= limit; cursor += sessionMinutes + breakMinutes {
		sessionEnd := cursor + sessionMinutes
		out = append(out, slotWindow{
			sessionStart: cursor,
			sessionEnd:   sessionEnd,
			breakEnd:     sessionEnd + breakMinutes,
		})
	}
	return out
}

func (w slotWindow) toSlot(date string, status models.SlotStatus) models.Slot {
	return models.Slot{
		Date:         date,
		StartTime:    FormatMinutes(w.sessionStart),
		EndTime:      FormatMinutes(w.breakEnd),
		SessionStart: FormatMinutes(w.sessionStart),
		SessionEnd:   FormatMinutes(w.sessionEnd),
		BreakStart:   FormatMinutes(w.sessionEnd),
		BreakEnd:     FormatMinutes(w.breakEnd),
		Status:       status,
	}
}

func checkDurations(sessionMinutes, breakMinutes int) error {
	if sessionMinutes <= 0 {
		return newError(CodeInvalidRange, "session length must be positive, got %d", sessionMinutes)
	}
	if breakMinutes < 0 {
		return newError(CodeInvalidRange, "break length must not be negative, got %d", breakMinutes)
	}
	return nil
}

// GenerateSlots cuts one availability entry into candidate slots for date.
// Every returned slot has status available; occupancy is applied by
// CalculateAvailableSlots. The result depends only on the arguments.
func GenerateSlots(date string, entry models.WeeklyAvailabilityEntry, sessionMinutes, breakMinutes int) ([]models.Slot, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if err := checkDurations(sessionMinutes, breakMinutes); err != nil {
		return nil, err
	}
	start, limit, err := timeRange(entry.StartTime, entry.EndTime)
	if err != nil {
		return nil, err
	}

	windows := cutWindows(start, limit, sessionMinutes, breakMinutes)
	slots := make([]models.Slot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, w.toSlot(date, models.SlotAvailable))
	}
	return slots, nil
}
