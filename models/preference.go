package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationPreference holds the per-user delivery settings the scheduler
// consults before sending. Owned by user settings; the reminder pipeline only
// reads it.
type NotificationPreference struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	WhatsAppNumber string `gorm:"type:varchar(20)"`
	NumberVerified bool   `gorm:"default:false"`

	RemindersEnabled bool     `gorm:"default:true"`
	DefaultLeadTimes IntSlice `gorm:"type:jsonb"`

	QuietHoursStart string `gorm:"type:varchar(5)"` // "22:00", local wall clock
	QuietHoursEnd   string `gorm:"type:varchar(5)"` // "08:00", may wrap midnight

	Language string `gorm:"type:varchar(5);default:'en'"`
	Timezone string `gorm:"type:varchar(40);default:'UTC'"`

	gorm.Model
}

func (p *NotificationPreference) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
