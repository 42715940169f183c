// utils/dates.go
package utils

import "time"

// StartOfDay strips the time-of-day component, keeping the location.
// Cuota due dates are calendar dates; comparisons always happen at day
// granularity.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from start to end, negative when
// end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(StartOfDay(end).Sub(StartOfDay(start)).Hours() / 24)
}
