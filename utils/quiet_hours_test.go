package utils

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestInQuietHours(t *testing.T) {
	cases := []struct {
		name       string
		now        time.Time
		start, end string
		suppressed bool
	}{
		{"non-wrapping inside", at(12, 0), "08:00", "22:00", true},
		{"non-wrapping before", at(7, 59), "08:00", "22:00", false},
		{"non-wrapping after", at(22, 30), "08:00", "22:00", false},
		{"non-wrapping exactly at start", at(8, 0), "08:00", "22:00", true},
		{"non-wrapping exactly at end", at(22, 0), "08:00", "22:00", false},

		{"wrapping late evening", at(23, 0), "22:00", "08:00", true},
		{"wrapping early morning", at(6, 0), "22:00", "08:00", true},
		{"wrapping daytime", at(12, 0), "22:00", "08:00", false},
		{"wrapping exactly at start", at(22, 0), "22:00", "08:00", true},
		{"wrapping exactly at end", at(8, 0), "22:00", "08:00", false},

		{"no start configured", at(23, 0), "", "08:00", false},
		{"no end configured", at(23, 0), "22:00", "", false},
		{"malformed start", at(23, 0), "25:99", "08:00", false},
	}

	for _, tc := range cases {
		if got := InQuietHours(tc.now, tc.start, tc.end); got != tc.suppressed {
			t.Errorf("%s: InQuietHours = %v, want %v", tc.name, got, tc.suppressed)
		}
	}
}
