package util

import (
	"time"
)

// DateLayout is the calendar date format accepted and emitted by the API
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ParseDate parses a YYYY-MM-DD string into midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders a calendar day as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDay drops the clock part of t, keeping the day as seen in t's own
// location, and returns it as midnight UTC
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return CalendarDay(now.In(loc))
}

// AddDays shifts a calendar day by n days (n may be negative)
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from start to end.
// Both values are expected to be calendar days (midnight UTC). Counted on
// Unix seconds since time.Duration overflows past about 292 years.
func DaysBetween(start, end time.Time) int {
	return int((CalendarDay(end).Unix() - CalendarDay(start).Unix()) / secondsPerDay)
}
