// controllers/cron.go
package controllers

import (
	"net/http"

	"fintrack-backend/services"

	"github.com/gin-gonic/gin"
)

// CronController exposes the two batch jobs as HTTP triggers so an external
// scheduler can drive them in place of (or alongside) the in-process cron.
type CronController struct {
	Reminders *services.ReminderService
	Queue     *services.QueueService
}

// RunReminders executes one reminder scheduler invocation
func (ctl *CronController) RunReminders(c *gin.Context) {
	summary := ctl.Reminders.Run(c.Request.Context())
	if !summary.Success {
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RunQueue executes one queue processor invocation
func (ctl *CronController) RunQueue(c *gin.Context) {
	summary := ctl.Queue.Run(c.Request.Context())
	if !summary.Success {
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}
