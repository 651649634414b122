// utils/quiet_hours.go
package utils

import "time"

// InQuietHours reports whether now falls inside the user's quiet hours.
// start and end are local wall-clock "HH:MM"; a range whose start is at or
// after its end wraps past midnight (22:00 -> 08:00). Missing or malformed
// bounds mean never suppressed.
func InQuietHours(now time.Time, start, end string) bool {
	s, okStart := parseClock(start)
	e, okEnd := parseClock(end)
	if !okStart || !okEnd {
		return false
	}

	n := now.Hour()*60 + now.Minute()
	if s < e {
		return n >= s && n < e
	}
	return n >= s || n < e
}

func parseClock(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
