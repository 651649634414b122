// models/appointment.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment lifecycle statuses
const (
	AppointmentPending   = "pending"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Recurrence rules
const (
	RecurNone    = "none"
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

// IntSlice stores an ordered list of ints in a jsonb column.
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *IntSlice) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Location    string
	ScheduledAt time.Time `gorm:"index;not null"`
	Category    string    `gorm:"type:varchar(50)"`
	Recurrence  string    `gorm:"type:varchar(10);default:'none'"` // none, daily, weekly, monthly, yearly
	Status      string    `gorm:"type:varchar(20);default:'pending';index"`

	ReminderEnabled   bool     `gorm:"default:true"`
	ReminderLeadTimes IntSlice `gorm:"type:jsonb"` // minutes before ScheduledAt
	FinalReminderSent bool     `gorm:"default:false"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// NextOccurrence returns the scheduled time of the following occurrence, or
// the zero time for non-recurring appointments.
func (a *Appointment) NextOccurrence() time.Time {
	switch a.Recurrence {
	case RecurDaily:
		return a.ScheduledAt.AddDate(0, 0, 1)
	case RecurWeekly:
		return a.ScheduledAt.AddDate(0, 0, 7)
	case RecurMonthly:
		return a.ScheduledAt.AddDate(0, 1, 0)
	case RecurYearly:
		return a.ScheduledAt.AddDate(1, 0, 0)
	}
	return time.Time{}
}
