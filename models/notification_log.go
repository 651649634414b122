// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification delivery statuses
const (
	NotificationPending   = "pending"
	NotificationSent      = "sent"
	NotificationDelivered = "delivered"
	NotificationFailed    = "failed"
	NotificationRead      = "read"
)

// NotificationLog records one delivery attempt. A row with status "sent" for a
// given (appointment, lead time) pair is what stops the scheduler from sending
// the same reminder twice.
type NotificationLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	LeadMinutes   int       `gorm:"index;not null"`
	Channel       string    `gorm:"type:varchar(20)"` // whatsapp, sms
	Recipient     string    `gorm:"type:varchar(20)"`
	Message       string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);index"`
	GatewayID     string    `gorm:"type:varchar(100)"`
	ErrorMessage  string    `gorm:"type:text"`
	RetryCount    int       `gorm:"default:0"`
	SentAt        time.Time
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
