package controllers

import (
	"testing"
	"time"
)

func TestHumanizeDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		when time.Time
		want string
	}{
		{"same day", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), "Today"},
		{"later same day", time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), "Today"},
		{"previous day", time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC), "Yesterday"},
		{"several days back", time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), "7 days ago"},
		{"future date clamps to today", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), "Today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanizeDaysAgo(tt.when, now); got != tt.want {
				t.Errorf("humanizeDaysAgo(%v) = %q, want %q", tt.when, got, tt.want)
			}
		})
	}
}
