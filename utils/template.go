// utils/template.go
package utils

import (
	"strings"
	"time"
)

// Fallbacks substituted for empty optional appointment fields.
const (
	FallbackDescription = "no description"
	FallbackLocation    = "location not specified"
)

// TemplateFields carries the appointment values a message template can
// reference. ScheduledAt must already be in the recipient's timezone.
type TemplateFields struct {
	Title       string
	Description string
	Location    string
	ScheduledAt time.Time
}

// RenderTemplate substitutes {title}, {date}, {time}, {location} and
// {description} in the template body. Placeholders the body spells
// differently are left untouched rather than treated as an error.
func RenderTemplate(body string, fields TemplateFields) string {
	description := fields.Description
	if description == "" {
		description = FallbackDescription
	}
	location := fields.Location
	if location == "" {
		location = FallbackLocation
	}

	message := strings.ReplaceAll(body, "{title}", fields.Title)
	message = strings.ReplaceAll(message, "{date}", fields.ScheduledAt.Format("02/01/2006"))
	message = strings.ReplaceAll(message, "{time}", fields.ScheduledAt.Format("15:04"))
	message = strings.ReplaceAll(message, "{location}", location)
	message = strings.ReplaceAll(message, "{description}", description)
	return message
}
