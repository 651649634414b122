package utils

import (
	"strings"
	"testing"
	"time"
)

func TestRenderTemplate(t *testing.T) {
	fields := TemplateFields{
		Title:       "Dentist",
		Description: "Annual cleaning",
		Location:    "Main St Clinic",
		ScheduledAt: time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC),
	}

	got := RenderTemplate("Reminder: {title} on {date} at {time} in {location}. {description}", fields)
	want := "Reminder: Dentist on 02/04/2026 at 14:30 in Main St Clinic. Annual cleaning"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTemplateFallbacks(t *testing.T) {
	fields := TemplateFields{
		Title:       "Dentist",
		ScheduledAt: time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC),
	}

	got := RenderTemplate("{title} at {time} in {location}", fields)

	if strings.Contains(got, "{location}") {
		t.Errorf("placeholder left unsubstituted: %q", got)
	}
	if !strings.Contains(got, FallbackLocation) {
		t.Errorf("expected location fallback in %q", got)
	}

	got = RenderTemplate("{description}", fields)
	if got != FallbackDescription {
		t.Errorf("got %q, want %q", got, FallbackDescription)
	}
}

func TestRenderTemplateUnknownPlaceholderPassesThrough(t *testing.T) {
	fields := TemplateFields{Title: "Dentist", ScheduledAt: time.Now()}

	got := RenderTemplate("{title} {nome}", fields)
	if !strings.Contains(got, "{nome}") {
		t.Errorf("unknown placeholder should pass through, got %q", got)
	}
}
