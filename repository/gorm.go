// repository/gorm.go
package repository

import (
	"errors"
	"time"

	"fintrack-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormAppointments struct {
	DB *gorm.DB
}

func (r *GormAppointments) PendingInWindow(start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.DB.
		Where("status = ? AND reminder_enabled = ? AND scheduled_at >= ? AND scheduled_at < ?",
			models.AppointmentPending, true, start, end).
		Order("scheduled_at asc").
		Find(&appointments).Error
	return appointments, err
}

func (r *GormAppointments) SetFinalReminderSent(id uuid.UUID) error {
	return r.DB.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("final_reminder_sent", true).Error
}

type GormPreferences struct {
	DB *gorm.DB
}

func (r *GormPreferences) ForUser(userID uuid.UUID) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	if err := r.DB.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}

type GormTemplates struct {
	DB *gorm.DB
}

func (r *GormTemplates) ActiveByType(templateType string) (*models.MessageTemplate, error) {
	var template models.MessageTemplate
	err := r.DB.Where("type = ? AND is_active = ?", templateType, true).
		Order("is_default asc"). // custom templates win over defaults
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

type GormNotificationLogs struct {
	DB *gorm.DB
}

func (r *GormNotificationLogs) SentExists(appointmentID uuid.UUID, leadMinutes int) (bool, error) {
	var count int64
	err := r.DB.Model(&models.NotificationLog{}).
		Where("appointment_id = ? AND lead_minutes = ? AND status = ?",
			appointmentID, leadMinutes, models.NotificationSent).
		Count(&count).Error
	return count > 0, err
}

func (r *GormNotificationLogs) Create(entry *models.NotificationLog) error {
	return r.DB.Create(entry).Error
}

type GormQueue struct {
	DB *gorm.DB
}

func (r *GormQueue) Enqueue(msg *models.QueuedMessage) error {
	return r.DB.Create(msg).Error
}

func (r *GormQueue) DueBatch(now time.Time, limit int) ([]models.QueuedMessage, error) {
	var batch []models.QueuedMessage
	err := r.DB.
		Where("status = ? AND scheduled_for <= ?", models.QueueStatusQueued, now).
		Order("created_at asc, priority desc").
		Limit(limit).
		Find(&batch).Error
	return batch, err
}

func (r *GormQueue) MarkProcessing(id uuid.UUID) (bool, error) {
	result := r.DB.Model(&models.QueuedMessage{}).
		Where("id = ? AND status = ?", id, models.QueueStatusQueued).
		Update("status", models.QueueStatusProcessing)
	return result.RowsAffected > 0, result.Error
}

func (r *GormQueue) Update(msg *models.QueuedMessage) error {
	return r.DB.Save(msg).Error
}
