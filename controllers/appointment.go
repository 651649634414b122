// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"fintrack-backend/config"
	"fintrack-backend/models"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure
type CreateAppointmentInput struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	ScheduledAt       time.Time `json:"scheduledAt" binding:"required"`
	Category          string    `json:"category"`
	Recurrence        string    `json:"recurrence" binding:"omitempty,oneof=none daily weekly monthly yearly"`
	ReminderEnabled   *bool     `json:"reminderEnabled"`
	ReminderLeadTimes []int     `json:"reminderLeadTimes"`
}

func contextUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return parsed, true
}

// CreateAppointment creates a new appointment
func CreateAppointment(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	recurrence := input.Recurrence
	if recurrence == "" {
		recurrence = models.RecurNone
	}
	reminderEnabled := true
	if input.ReminderEnabled != nil {
		reminderEnabled = *input.ReminderEnabled
	}

	appointment := models.Appointment{
		UserID:            userUUID,
		Title:             input.Title,
		Description:       input.Description,
		Location:          input.Location,
		ScheduledAt:       input.ScheduledAt,
		Category:          input.Category,
		Recurrence:        recurrence,
		Status:            models.AppointmentPending,
		ReminderEnabled:   reminderEnabled,
		ReminderLeadTimes: models.IntSlice(input.ReminderLeadTimes),
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments retrieves the user's appointments, optionally by status
func GetAppointments(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_at asc").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CompleteAppointment marks an appointment completed and materializes the
// next occurrence for recurring appointments
func CompleteAppointment(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status != models.AppointmentPending {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is not pending")
		return
	}

	appointment.Status = models.AppointmentCompleted
	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	// Recurring appointments roll forward into a fresh pending occurrence.
	if next := appointment.NextOccurrence(); !next.IsZero() {
		occurrence := models.Appointment{
			UserID:            appointment.UserID,
			Title:             appointment.Title,
			Description:       appointment.Description,
			Location:          appointment.Location,
			ScheduledAt:       next,
			Category:          appointment.Category,
			Recurrence:        appointment.Recurrence,
			Status:            models.AppointmentPending,
			ReminderEnabled:   appointment.ReminderEnabled,
			ReminderLeadTimes: appointment.ReminderLeadTimes,
		}
		if err := config.DB.Create(&occurrence).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to schedule next occurrence")
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointment": appointment, "next": occurrence})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// CancelAppointment marks an appointment cancelled
func CancelAppointment(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND id = ? AND status = ?", userUUID, appointmentUUID, models.AppointmentPending).
		Update("status", models.AppointmentCancelled)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Pending appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}
