package timetricks

import (
	"fmt"
	"time"
)

const (
	// DateFormat is how calendar dates travel between the form and the
	// backend.
	DateFormat = "2006-01-02"
	dayFormat  = "20060102"
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// ParseDate reads a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q not in fmt %q: %w", s, DateFormat, err)
	}
	return t, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Days lists each calendar day from start to end inclusive, at midnight. It
// is empty if end comes before start.
func Days(start, end time.Time) []time.Time {
	start, end = TrimClock(start), TrimClock(end)
	var days []time.Time
	// AddDate rather than Add keeps midnight across daylight saving changes.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
