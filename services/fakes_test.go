package services

import (
	"context"
	"time"

	"fintrack-backend/gateway"
	"fintrack-backend/models"
	"fintrack-backend/repository"

	"github.com/google/uuid"
)

type fakeAppointments struct {
	rows         []models.Appointment
	finalFlagged []uuid.UUID
}

func (f *fakeAppointments) PendingInWindow(start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.rows {
		if a.Status != models.AppointmentPending || !a.ReminderEnabled {
			continue
		}
		if a.ScheduledAt.Before(start) || !a.ScheduledAt.Before(end) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointments) SetFinalReminderSent(id uuid.UUID) error {
	f.finalFlagged = append(f.finalFlagged, id)
	return nil
}

type fakePreferences struct {
	byUser map[uuid.UUID]*models.NotificationPreference
}

func (f *fakePreferences) ForUser(userID uuid.UUID) (*models.NotificationPreference, error) {
	pref, ok := f.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return pref, nil
}

type fakeTemplates struct {
	byType map[string]*models.MessageTemplate
}

func (f *fakeTemplates) ActiveByType(templateType string) (*models.MessageTemplate, error) {
	t, ok := f.byType[templateType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

type fakeLogs struct {
	entries []models.NotificationLog
}

func (f *fakeLogs) SentExists(appointmentID uuid.UUID, leadMinutes int) (bool, error) {
	for _, e := range f.entries {
		if e.AppointmentID == appointmentID && e.LeadMinutes == leadMinutes && e.Status == models.NotificationSent {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLogs) Create(entry *models.NotificationLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeQueue struct {
	rows       map[uuid.UUID]*models.QueuedMessage
	claimDeny  map[uuid.UUID]bool
	lastUpdate *models.QueuedMessage
}

func newFakeQueue(msgs ...*models.QueuedMessage) *fakeQueue {
	q := &fakeQueue{rows: map[uuid.UUID]*models.QueuedMessage{}, claimDeny: map[uuid.UUID]bool{}}
	for _, m := range msgs {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		q.rows[m.ID] = m
	}
	return q
}

func (f *fakeQueue) Enqueue(msg *models.QueuedMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	f.rows[msg.ID] = msg
	return nil
}

func (f *fakeQueue) DueBatch(now time.Time, limit int) ([]models.QueuedMessage, error) {
	var out []models.QueuedMessage
	for _, m := range f.rows {
		if m.Status == models.QueueStatusQueued && !m.ScheduledFor.After(now) {
			out = append(out, *m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQueue) MarkProcessing(id uuid.UUID) (bool, error) {
	if f.claimDeny[id] {
		return false, nil
	}
	m, ok := f.rows[id]
	if !ok || m.Status != models.QueueStatusQueued {
		return false, nil
	}
	m.Status = models.QueueStatusProcessing
	return true, nil
}

func (f *fakeQueue) Update(msg *models.QueuedMessage) error {
	copied := *msg
	f.rows[msg.ID] = &copied
	f.lastUpdate = &copied
	return nil
}

type sendCall struct {
	number string
	text   string
}

type fakeSender struct {
	result gateway.SendResult
	calls  []sendCall
}

func (f *fakeSender) Send(ctx context.Context, number, text string) (string, gateway.SendResult) {
	f.calls = append(f.calls, sendCall{number: number, text: text})
	return gateway.ChannelWhatsApp, f.result
}
