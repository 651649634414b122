// controllers/notification.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"fintrack-backend/config"
	"fintrack-backend/models"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetNotificationLogs lists delivery attempts for operator inspection.
// Filters: ?status=, ?appointmentId=, ?limit= (default 50).
func GetNotificationLogs(c *gin.Context) {
	query := config.DB.Model(&models.NotificationLog{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if apptID := c.Query("appointmentId"); apptID != "" {
		parsed, err := uuid.Parse(apptID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
			return
		}
		query = query.Where("appointment_id = ?", parsed)
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var logs []models.NotificationLog
	if err := query.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notification logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// TestSendInput defines the expected JSON structure
type TestSendInput struct {
	Number       string     `json:"number" binding:"required"`
	Message      string     `json:"message" binding:"required"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	Priority     int        `json:"priority"`
}

// TestSend enqueues a manual message on the durable queue. Delivery happens
// on the next queue processor run, not inline.
func TestSend(c *gin.Context) {
	var input TestSendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Number) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	scheduledFor := time.Now()
	if input.ScheduledFor != nil {
		scheduledFor = *input.ScheduledFor
	}

	msg := models.QueuedMessage{
		Recipient:    input.Number,
		Message:      input.Message,
		ScheduledFor: scheduledFor,
		Status:       models.QueueStatusQueued,
		Priority:     input.Priority,
		MaxRetries:   3,
	}

	if err := config.DB.Create(&msg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to enqueue message")
		return
	}

	c.JSON(http.StatusAccepted, msg)
}

// GetQueuedMessages lists backlog rows, optionally by status.
func GetQueuedMessages(c *gin.Context) {
	query := config.DB.Model(&models.QueuedMessage{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var messages []models.QueuedMessage
	if err := query.Order("created_at asc").Limit(100).Find(&messages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve queued messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}
