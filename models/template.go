package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template types, selected by lead-time bucket.
const (
	TemplateReminderShort  = "reminder_short"  // <= 30 min out
	TemplateReminderCustom = "reminder_custom" // <= 60 min out
	TemplateReminder24h    = "reminder_24h"    // everything longer
)

type MessageTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Type      string    `gorm:"type:varchar(30);index;not null"`
	Body      string    `gorm:"type:text;not null"` // {title} {date} {time} {location} {description}
	IsActive  bool      `gorm:"default:true"`
	IsDefault bool      `gorm:"default:false"`
	gorm.Model
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// TemplateTypeForLead maps a lead time to the template bucket used to render
// its reminder.
func TemplateTypeForLead(leadMinutes int) string {
	switch {
	case leadMinutes <= 30:
		return TemplateReminderShort
	case leadMinutes <= 60:
		return TemplateReminderCustom
	default:
		return TemplateReminder24h
	}
}
