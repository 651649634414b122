// services/scheduler.go
package services

import (
	"context"
	"log"

	"fintrack-backend/config"

	"github.com/robfig/cron/v3"
)

// StartScheduler wires the two periodic invocations. Each tick is a fresh
// short-lived run sharing no in-memory state with the previous one.
func StartScheduler(cfg config.App, reminders *ReminderService, queue *QueueService) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(cfg.ReminderCron, func() {
		summary := reminders.Run(context.Background())
		logSummary("reminder scheduler", summary)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(cfg.QueueCron, func() {
		summary := queue.Run(context.Background())
		logSummary("queue processor", summary)
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Println("Reminder scheduler started")
	return c, nil
}

func logSummary(job string, summary RunSummary) {
	if !summary.Success {
		log.Printf("%s failed: %s", job, summary.Error)
		return
	}
	if summary.Processed > 0 {
		log.Printf("%s processed %d items", job, summary.Processed)
	}
}
