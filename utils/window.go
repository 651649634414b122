// utils/window.go
package utils

import "time"

// LeadWindow pairs a reminder horizon with the tolerance applied when matching
// appointments against it. The tolerance absorbs the gap between periodic
// scheduler runs.
type LeadWindow struct {
	LeadMinutes   int
	WindowMinutes int
}

// DefaultLeadWindows lists the supported reminder horizons. The 24-hour
// horizon carries a wider window because its job runs less frequently.
func DefaultLeadWindows() []LeadWindow {
	return []LeadWindow{
		{LeadMinutes: 1440, WindowMinutes: 30},
		{LeadMinutes: 60, WindowMinutes: 5},
		{LeadMinutes: 30, WindowMinutes: 5},
		{LeadMinutes: 15, WindowMinutes: 5},
	}
}

// DueInterval returns the half-open interval [start, end) an appointment's
// scheduled time must fall in to be due for this lead time at now.
func (w LeadWindow) DueInterval(now time.Time) (start, end time.Time) {
	target := now.Add(time.Duration(w.LeadMinutes) * time.Minute)
	tolerance := time.Duration(w.WindowMinutes) * time.Minute
	return target.Add(-tolerance), target.Add(tolerance)
}
