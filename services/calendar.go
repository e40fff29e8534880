package services

import "time"

// DayKey returns the calendar-day key for a timestamp, e.g. "2025-01-10".
// All streak and aggregation bucketing uses UTC days.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayStart truncates a timestamp to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// DayGap returns the elapsed time between two instants in fractional days.
func DayGap(last, now time.Time) float64 {
	return now.Sub(last).Hours() / 24
}
