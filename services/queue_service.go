// services/queue_service.go
package services

import (
	"context"
	"log"
	"time"

	"fintrack-backend/models"
	"fintrack-backend/repository"

	"gorm.io/gorm"
)

const maxBackoff = 30 * time.Minute

// QueueService drains the durable message backlog: at-least-once delivery
// with bounded retries and exponential backoff on the scheduled_for stamp.
type QueueService struct {
	Queue     repository.Queue
	Sender    MessageSender
	BatchSize int

	Now func() time.Time
}

func NewQueueService(db *gorm.DB, sender MessageSender, batchSize int) *QueueService {
	return &QueueService{
		Queue:     &repository.GormQueue{DB: db},
		Sender:    sender,
		BatchSize: batchSize,
		Now:       time.Now,
	}
}

// Run processes one batch of due queued messages.
func (s *QueueService) Run(ctx context.Context) RunSummary {
	now := s.Now()
	summary := RunSummary{Success: true, Items: []RunItem{}}

	batch, err := s.Queue.DueBatch(now, s.BatchSize)
	if err != nil {
		return RunSummary{Error: "loading queue batch: " + err.Error(), Items: []RunItem{}}
	}

	for i := range batch {
		msg := batch[i]
		item := RunItem{ID: msg.ID.String()}

		claimed, err := s.Queue.MarkProcessing(msg.ID)
		if err != nil {
			item.Status = ItemFailed
			item.Detail = "claiming message: " + err.Error()
			summary.Items = append(summary.Items, item)
			continue
		}
		if !claimed {
			// A concurrent run got there first.
			item.Status = ItemSkippedClaimed
			summary.Items = append(summary.Items, item)
			continue
		}
		msg.Status = models.QueueStatusProcessing

		_, result := s.Sender.Send(ctx, msg.Recipient, msg.Message)
		if result.Sent {
			sentAt := now
			msg.Status = models.QueueStatusSent
			msg.SentAt = &sentAt
			msg.LastError = ""
			item.Status = ItemSent
		} else {
			msg.RetryCount++
			msg.LastError = result.Error
			if msg.RetryCount > msg.MaxRetries {
				msg.Status = models.QueueStatusFailed
				item.Status = ItemFailed
			} else {
				msg.Status = models.QueueStatusQueued
				msg.ScheduledFor = now.Add(backoffDelay(msg.RetryCount))
				item.Status = "requeued"
			}
			item.Detail = result.Error
		}

		if err := s.Queue.Update(&msg); err != nil {
			log.Printf("Failed to update queued message %s: %v", msg.ID, err)
		}
		summary.Items = append(summary.Items, item)
	}

	summary.Processed = len(summary.Items)
	return summary
}

// backoffDelay doubles per retry: 1m, 2m, 4m... capped at maxBackoff.
func backoffDelay(retry int) time.Duration {
	delay := time.Minute
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
