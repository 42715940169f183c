package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	tzLima, _ := time.LoadLocation("America/Lima")

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"same day different hours",
			time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 1, 23, 30, 0, 0, time.UTC),
			0,
		},
		{
			"thirty days apart",
			time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.February, 9, 0, 0, 0, 0, time.UTC),
			30,
		},
		{
			"end before start",
			time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			-4,
		},
		{
			"non-UTC location",
			time.Date(2026, time.June, 1, 23, 0, 0, 0, tzLima),
			time.Date(2026, time.June, 3, 1, 0, 0, 0, tzLima),
			2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, time.May, 7, 15, 42, 9, 123, time.UTC)
	got := StartOfDay(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("StartOfDay() = %v", got)
	}
	if got.Year() != 2026 || got.Month() != time.May || got.Day() != 7 {
		t.Errorf("date changed: %v", got)
	}
}
