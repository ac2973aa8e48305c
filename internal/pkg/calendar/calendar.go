package calendar

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf drops the time-of-day of t, keeping t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns the calendar date of now as observed in loc, at UTC
// midnight. This is the key used for per-day attendance records.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return civil(now.In(loc))
}

// MonthStart returns the first calendar day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsWorkingDay reports whether t falls Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountWorkingDays counts Monday-Friday days in the inclusive range
// [start, end]. Holidays are not modeled. Returns 0 when start is after end.
func CountWorkingDays(start, end time.Time) int {
	first := civil(start)
	last := civil(end)
	if first.After(last) {
		return 0
	}

	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// civil maps t onto its calendar date at UTC midnight so that day stepping
// is immune to DST transitions in t's location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
