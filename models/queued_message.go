// models/queued_message.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Queue statuses. "sent" and "failed" are terminal; a row never moves back to
// "queued" from either.
const (
	QueueStatusQueued     = "queued"
	QueueStatusProcessing = "processing"
	QueueStatusSent       = "sent"
	QueueStatusFailed     = "failed"
)

// QueuedMessage is one row of the durable at-least-once delivery backlog,
// used for sends that do not originate from the reminder scheduler (manual
// test messages and the like).
type QueuedMessage struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Recipient    string    `gorm:"type:varchar(20);not null"`
	Message      string    `gorm:"type:text;not null"`
	ScheduledFor time.Time `gorm:"index;not null"`
	Status       string    `gorm:"type:varchar(20);default:'queued';index"`
	Priority     int       `gorm:"default:0"`
	RetryCount   int       `gorm:"default:0"`
	MaxRetries   int       `gorm:"default:3"`
	LastError    string    `gorm:"type:text"`
	SentAt       *time.Time
	gorm.Model
}

func (q *QueuedMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}
