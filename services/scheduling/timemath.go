package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	MinutesPerDay = 24 * 60
)

var (
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ToMinutes converts "HH:MM" to minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	m := timePattern.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, newError(CodeInvalidFormat, "time %q is not HH:MM", hhmm)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, nil
}

// FormatMinutes renders minutes since midnight as "HH:MM". A trailing break can
// run past midnight; those values keep counting hours ("24:30") on the same date.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether [startA,endA) and [startB,endB) intersect.
// Ranges that only touch at an endpoint do not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// ParseDate parses a strict "YYYY-MM-DD" calendar date.
func ParseDate(date string) (time.Time, error) {
	if !datePattern.MatchString(date) {
		return time.Time{}, newError(CodeInvalidFormat, "date %q is not YYYY-MM-DD", date)
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, newError(CodeInvalidFormat, "date %q is not a calendar date", date)
	}
	return t, nil
}

// ValidateDate is ParseDate without the result.
func ValidateDate(date string) error {
	_, err := ParseDate(date)
	return err
}

// timeRange parses a start/end pair and enforces start < end.
func timeRange(startTime, endTime string) (int, int, error) {
	start, err := ToMinutes(startTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ToMinutes(endTime)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, newError(CodeInvalidRange, "start %s must be before end %s", startTime, endTime)
	}
	return start, end, nil
}
