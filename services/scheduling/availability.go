package scheduling

import (
	"sort"
	"time"

	"slotbook/models"
)

type interval struct{ start, end int }

// blockedWindow returns the part of date covered by b. A multi-day range blocks
// from StartTime to midnight on its first day, whole interior days, and from
// midnight to EndTime on its last day.
func blockedWindow(b models.BlockedRange, date string) (interval, bool, error) {
	b = b.Normalize()
	if !b.Covers(date) {
		return interval{}, false, nil
	}
	start, err := ToMinutes(b.StartTime)
	if err != nil {
		return interval{}, false, err
	}
	end, err := ToMinutes(b.EndTime)
	if err != nil {
		return interval{}, false, err
	}

	switch {
	case b.FromDate == b.ToDate:
		return interval{start, end}, true, nil
	case date == b.FromDate:
		return interval{start, MinutesPerDay}, true, nil
	case date == b.ToDate:
		return interval{0, end}, true, nil
	default:
		return interval{0, MinutesPerDay}, true, nil
	}
}

func blockedIntervals(ranges []models.BlockedRange, date string) ([]interval, error) {
	var out []interval
	for _, b := range ranges {
		iv, ok, err := blockedWindow(b, date)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, iv)
		}
	}
	return out, nil
}

// BlockedAt reports whether [startTime,endTime) on date touches any blocked range.
func BlockedAt(ranges []models.BlockedRange, date, startTime, endTime string) (bool, error) {
	start, end, err := timeRange(startTime, endTime)
	if err != nil {
		return false, err
	}
	ivs, err := blockedIntervals(ranges, date)
	if err != nil {
		return false, err
	}
	return overlapsAny(start, end, ivs), nil
}

func overlapsAny(start, end int, ivs []interval) bool {
	for _, iv := range ivs {
		if Overlaps(start, end, iv.start, iv.end) {
			return true
		}
	}
	return false
}

// bookedIntervals groups the time taken by non-cancelled bookings per date.
func bookedIntervals(bookings []models.Booking) (map[string][]interval, error) {
	out := make(map[string][]interval)
	for _, b := range bookings {
		if !b.Active() {
			continue
		}
		start, end, err := timeRange(b.StartTime, b.EndTime)
		if err != nil {
			return nil, err
		}
		out[b.Date] = append(out[b.Date], interval{start, end})
	}
	return out, nil
}

// CalculateAvailableSlots builds the slot list for every date in
// [startDate, endDate], marking each slot booked, blocked or available.
// Bookings are expected to be pre-filtered to a single provider.
func CalculateAvailableSlots(
	weekly []models.WeeklyAvailabilityEntry,
	blocked []models.BlockedRange,
	bookings []models.Booking,
	startDate, endDate string,
	sessionMinutes, breakMinutes int,
) ([]models.Slot, error) {
	first, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	last, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if first.After(last) {
		return nil, newError(CodeInvalidRange, "start date %s is after end date %s", startDate, endDate)
	}
	if err := checkDurations(sessionMinutes, breakMinutes); err != nil {
		return nil, err
	}

	byDay := make(map[time.Weekday][]interval)
	for _, e := range weekly {
		start, end, err := timeRange(e.StartTime, e.EndTime)
		if err != nil {
			return nil, err
		}
		wd := time.Weekday(e.DayOfWeek)
		byDay[wd] = append(byDay[wd], interval{start, end})
	}

	booked, err := bookedIntervals(bookings)
	if err != nil {
		return nil, err
	}

	var slots []models.Slot
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		windows := byDay[d.Weekday()]
		if len(windows) == 0 {
			continue
		}
		date := d.Format(DateLayout)

		var cut []slotWindow
		for _, w := range windows {
			cut = append(cut, cutWindows(w.start, w.end, sessionMinutes, breakMinutes)...)
		}
		sort.SliceStable(cut, func(i, j int) bool { return cut[i].sessionStart < cut[j].sessionStart })

		blockedToday, err := blockedIntervals(blocked, date)
		if err != nil {
			return nil, err
		}
		bookedToday := booked[date]

		for _, w := range cut {
			status := models.SlotAvailable
			switch {
			case overlapsAny(w.sessionStart, w.sessionEnd, bookedToday):
				status = models.SlotBooked
			case overlapsAny(w.sessionStart, w.sessionEnd, blockedToday):
				status = models.SlotBlocked
			}
			slots = append(slots, w.toSlot(date, status))
		}
	}
	return slots, nil
}
