// repository/contract.go
package repository

import (
	"errors"
	"time"

	"fintrack-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row, regardless of the
// underlying store.
var ErrNotFound = errors.New("record not found")

// Appointments gives the scheduler its view of the appointments table.
type Appointments interface {
	// PendingInWindow returns pending, reminder-enabled appointments whose
	// scheduled time falls in [start, end).
	PendingInWindow(start, end time.Time) ([]models.Appointment, error)
	SetFinalReminderSent(id uuid.UUID) error
}

type Preferences interface {
	ForUser(userID uuid.UUID) (*models.NotificationPreference, error)
}

type Templates interface {
	ActiveByType(templateType string) (*models.MessageTemplate, error)
}

type NotificationLogs interface {
	// SentExists reports whether a sent entry already exists for the
	// (appointment, lead time) pair. This is the dedup guard.
	SentExists(appointmentID uuid.UUID, leadMinutes int) (bool, error)
	Create(entry *models.NotificationLog) error
}

type Queue interface {
	Enqueue(msg *models.QueuedMessage) error
	// DueBatch returns up to limit queued rows with scheduled_for <= now,
	// oldest first, priority as secondary order.
	DueBatch(now time.Time, limit int) ([]models.QueuedMessage, error)
	// MarkProcessing fences a row against a concurrent processor run. It
	// returns false when the row was no longer in the queued state.
	MarkProcessing(id uuid.UUID) (bool, error)
	Update(msg *models.QueuedMessage) error
}
