// controllers/preference.go
package controllers

import (
	"net/http"
	"time"

	"fintrack-backend/config"
	"fintrack-backend/models"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdatePreferenceInput defines the expected JSON structure
type UpdatePreferenceInput struct {
	WhatsAppNumber   *string `json:"whatsappNumber"`
	RemindersEnabled *bool   `json:"remindersEnabled"`
	DefaultLeadTimes []int   `json:"defaultLeadTimes"`
	QuietHoursStart  *string `json:"quietHoursStart"`
	QuietHoursEnd    *string `json:"quietHoursEnd"`
	Language         *string `json:"language"`
	Timezone         *string `json:"timezone"`
}

// GetPreference retrieves the user's notification preferences
func GetPreference(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	var pref models.NotificationPreference
	if err := config.DB.Where("user_id = ?", userUUID).First(&pref).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Preferences not found")
		return
	}

	c.JSON(http.StatusOK, pref)
}

// UpdatePreference updates the user's notification preferences
func UpdatePreference(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	var input UpdatePreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pref models.NotificationPreference
	if err := config.DB.Where("user_id = ?", userUUID).First(&pref).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Preferences not found")
		return
	}

	if input.WhatsAppNumber != nil {
		if *input.WhatsAppNumber != "" && !utils.ValidatePhone(*input.WhatsAppNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		// A changed number needs verification again.
		if *input.WhatsAppNumber != pref.WhatsAppNumber {
			pref.NumberVerified = false
		}
		pref.WhatsAppNumber = *input.WhatsAppNumber
	}
	if input.RemindersEnabled != nil {
		pref.RemindersEnabled = *input.RemindersEnabled
	}
	if input.DefaultLeadTimes != nil {
		pref.DefaultLeadTimes = models.IntSlice(input.DefaultLeadTimes)
	}
	if input.QuietHoursStart != nil {
		if *input.QuietHoursStart != "" && !validClock(*input.QuietHoursStart) {
			utils.RespondWithError(c, http.StatusBadRequest, "Quiet hours start must be HH:MM")
			return
		}
		pref.QuietHoursStart = *input.QuietHoursStart
	}
	if input.QuietHoursEnd != nil {
		if *input.QuietHoursEnd != "" && !validClock(*input.QuietHoursEnd) {
			utils.RespondWithError(c, http.StatusBadRequest, "Quiet hours end must be HH:MM")
			return
		}
		pref.QuietHoursEnd = *input.QuietHoursEnd
	}
	if input.Language != nil {
		pref.Language = *input.Language
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown timezone")
			return
		}
		pref.Timezone = *input.Timezone
	}

	if err := config.DB.Save(&pref).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	c.JSON(http.StatusOK, pref)
}

// VerifyNumber confirms the user's WhatsApp number and enqueues a
// confirmation message so the user sees the channel working end to end.
func VerifyNumber(c *gin.Context) {
	userUUID, ok := contextUserID(c)
	if !ok {
		return
	}

	var pref models.NotificationPreference
	if err := config.DB.Where("user_id = ?", userUUID).First(&pref).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Preferences not found")
		return
	}
	if pref.WhatsAppNumber == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "No WhatsApp number configured")
		return
	}

	pref.NumberVerified = true
	if err := config.DB.Save(&pref).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	confirmation := models.QueuedMessage{
		Recipient:    pref.WhatsAppNumber,
		Message:      "Your number is now set up for appointment reminders.",
		ScheduledFor: time.Now(),
		Status:       models.QueueStatusQueued,
		MaxRetries:   3,
	}
	if err := config.DB.Create(&confirmation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to enqueue confirmation")
		return
	}

	c.JSON(http.StatusOK, pref)
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}
