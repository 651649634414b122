// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fintrack-backend/gateway"
	"fintrack-backend/models"
	"fintrack-backend/repository"
	"fintrack-backend/utils"

	"gorm.io/gorm"
)

// MessageSender is the slice of the gateway the orchestrators need.
type MessageSender interface {
	Send(ctx context.Context, number, text string) (channel string, result gateway.SendResult)
}

// Item outcomes reported in a run summary.
const (
	ItemSent             = "sent"
	ItemFailed           = "failed"
	ItemSkippedDuplicate = "skipped_duplicate"
	ItemSkippedNoContact = "skipped_no_contact"
	ItemSkippedQuiet     = "skipped_quiet_hours"
	ItemSkippedTemplate  = "skipped_no_template"
	ItemSkippedClaimed   = "skipped_claimed"
)

// RunItem is one processed candidate in an invocation summary.
type RunItem struct {
	ID          string `json:"id"`
	LeadMinutes int    `json:"leadMinutes,omitempty"`
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
}

// RunSummary is the JSON body returned by a trigger invocation.
type RunSummary struct {
	Success   bool      `json:"success"`
	Processed int       `json:"processed"`
	Items     []RunItem `json:"items"`
	Error     string    `json:"error,omitempty"`
}

// ReminderService runs one pass of the appointment reminder pipeline: for
// each configured lead time it finds due appointments, applies the dedup
// guard and quiet hours, renders the template and dispatches through the
// gateway, logging one NotificationLog row per attempt.
type ReminderService struct {
	Appointments repository.Appointments
	Preferences  repository.Preferences
	Templates    repository.Templates
	Logs         repository.NotificationLogs
	Sender       MessageSender
	LeadWindows  []utils.LeadWindow

	Now func() time.Time
}

func NewReminderService(db *gorm.DB, sender MessageSender) *ReminderService {
	return &ReminderService{
		Appointments: &repository.GormAppointments{DB: db},
		Preferences:  &repository.GormPreferences{DB: db},
		Templates:    &repository.GormTemplates{DB: db},
		Logs:         &repository.GormNotificationLogs{DB: db},
		Sender:       sender,
		LeadWindows:  utils.DefaultLeadWindows(),
		Now:          time.Now,
	}
}

// Run executes one scheduler invocation. Per-item failures never abort the
// batch; only a failing appointment query does.
func (s *ReminderService) Run(ctx context.Context) RunSummary {
	now := s.Now()
	summary := RunSummary{Success: true, Items: []RunItem{}}
	shortest := s.shortestLead()

	for _, window := range s.LeadWindows {
		start, end := window.DueInterval(now)
		candidates, err := s.Appointments.PendingInWindow(start, end)
		if err != nil {
			return RunSummary{Error: "querying due appointments: " + err.Error(), Items: []RunItem{}}
		}

		for i := range candidates {
			item := s.processCandidate(ctx, now, candidates[i], window.LeadMinutes, shortest)
			if item == nil {
				continue
			}
			summary.Items = append(summary.Items, *item)
		}
	}

	summary.Processed = len(summary.Items)
	return summary
}

// processCandidate walks one (appointment, lead time) pair through the state
// machine. A nil return means the appointment did not ask for this lead time.
func (s *ReminderService) processCandidate(ctx context.Context, now time.Time, appt models.Appointment, lead, shortest int) *RunItem {
	item := RunItem{ID: appt.ID.String(), LeadMinutes: lead}

	alreadySent, err := s.Logs.SentExists(appt.ID, lead)
	if err != nil {
		item.Status = ItemFailed
		item.Detail = "dedup check: " + err.Error()
		return &item
	}
	if alreadySent {
		item.Status = ItemSkippedDuplicate
		return &item
	}

	pref, err := s.Preferences.ForUser(appt.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Configuration gap, not an error: nothing to send to.
			item.Status = ItemSkippedNoContact
			return &item
		}
		item.Status = ItemFailed
		item.Detail = "loading preferences: " + err.Error()
		return &item
	}
	if !pref.RemindersEnabled || pref.WhatsAppNumber == "" || !pref.NumberVerified {
		item.Status = ItemSkippedNoContact
		return &item
	}

	if !leadRequested(appt, pref, lead) {
		return nil
	}

	location, err := time.LoadLocation(pref.Timezone)
	if err != nil {
		location = time.UTC
	}
	if utils.InQuietHours(now.In(location), pref.QuietHoursStart, pref.QuietHoursEnd) {
		// Dropped for this cycle, not deferred.
		item.Status = ItemSkippedQuiet
		return &item
	}

	templateType := models.TemplateTypeForLead(lead)
	template, err := s.Templates.ActiveByType(templateType)
	if err != nil {
		// Operator misconfiguration, surfaced loudly but non-fatal.
		log.Printf("No active template for type %s: %v", templateType, err)
		item.Status = ItemSkippedTemplate
		item.Detail = templateType
		return &item
	}

	message := utils.RenderTemplate(template.Body, utils.TemplateFields{
		Title:       appt.Title,
		Description: appt.Description,
		Location:    appt.Location,
		ScheduledAt: appt.ScheduledAt.In(location),
	})

	channel, result := s.Sender.Send(ctx, pref.WhatsAppNumber, message)

	entry := models.NotificationLog{
		AppointmentID: appt.ID,
		LeadMinutes:   lead,
		Channel:       channel,
		Recipient:     pref.WhatsAppNumber,
		Message:       message,
		GatewayID:     result.MessageID,
		ErrorMessage:  result.Error,
		SentAt:        now,
	}
	if result.Sent {
		entry.Status = models.NotificationSent
		item.Status = ItemSent
	} else {
		entry.Status = models.NotificationFailed
		item.Status = ItemFailed
		item.Detail = result.Error
		log.Printf("Failed to send reminder for appointment %s: %s", appt.ID, result.Error)
	}

	// Durability point: a crash between the send and this write risks one
	// duplicate next cycle.
	if err := s.Logs.Create(&entry); err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", appt.ID, err)
	}

	if result.Sent && lead == shortest {
		if err := s.Appointments.SetFinalReminderSent(appt.ID); err != nil {
			log.Printf("Failed to flag final reminder for appointment %s: %v", appt.ID, err)
		}
	}

	return &item
}

func (s *ReminderService) shortestLead() int {
	shortest := 0
	for _, w := range s.LeadWindows {
		if shortest == 0 || w.LeadMinutes < shortest {
			shortest = w.LeadMinutes
		}
	}
	return shortest
}

// leadRequested resolves the effective lead-time list: the appointment's own
// list when present, else the user's defaults, else every configured horizon.
func leadRequested(appt models.Appointment, pref *models.NotificationPreference, lead int) bool {
	leads := appt.ReminderLeadTimes
	if len(leads) == 0 {
		leads = pref.DefaultLeadTimes
	}
	if len(leads) == 0 {
		return true
	}
	for _, m := range leads {
		if m == lead {
			return true
		}
	}
	return false
}
