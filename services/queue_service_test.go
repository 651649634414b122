package services

import (
	"context"
	"testing"
	"time"

	"fintrack-backend/gateway"
	"fintrack-backend/models"

	"github.com/google/uuid"
)

func newTestQueueService(queue *fakeQueue, sender *fakeSender) *QueueService {
	return &QueueService{
		Queue:     queue,
		Sender:    sender,
		BatchSize: 10,
		Now:       func() time.Time { return testNow },
	}
}

func queuedMessage() *models.QueuedMessage {
	return &models.QueuedMessage{
		ID:           uuid.New(),
		Recipient:    "5511999990000",
		Message:      "hello",
		ScheduledFor: testNow.Add(-time.Minute),
		Status:       models.QueueStatusQueued,
		MaxRetries:   3,
	}
}

func TestQueueRunSendsDueMessage(t *testing.T) {
	msg := queuedMessage()
	queue := newFakeQueue(msg)
	sender := &fakeSender{result: gateway.SendResult{Sent: true, MessageID: "MSG-9"}}

	summary := newTestQueueService(queue, sender).Run(context.Background())

	if !summary.Success || summary.Processed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	row := queue.rows[msg.ID]
	if row.Status != models.QueueStatusSent {
		t.Errorf("status = %q", row.Status)
	}
	if row.SentAt == nil || !row.SentAt.Equal(testNow) {
		t.Errorf("sent_at = %v", row.SentAt)
	}
}

func TestQueueRunSkipsFutureMessage(t *testing.T) {
	msg := queuedMessage()
	msg.ScheduledFor = testNow.Add(time.Hour)
	queue := newFakeQueue(msg)
	sender := &fakeSender{result: gateway.SendResult{Sent: true}}

	summary := newTestQueueService(queue, sender).Run(context.Background())

	if summary.Processed != 0 || len(sender.calls) != 0 {
		t.Errorf("future message must not be processed: %+v", summary)
	}
}

func TestQueueRunRequeuesWithBackoff(t *testing.T) {
	msg := queuedMessage()
	msg.RetryCount = 2
	queue := newFakeQueue(msg)
	sender := &fakeSender{result: gateway.SendResult{Error: "timeout"}}

	newTestQueueService(queue, sender).Run(context.Background())

	row := queue.rows[msg.ID]
	if row.RetryCount != 3 {
		t.Errorf("retry count = %d, want 3", row.RetryCount)
	}
	if row.Status != models.QueueStatusQueued {
		t.Errorf("status = %q, want queued", row.Status)
	}
	if row.LastError != "timeout" {
		t.Errorf("last error = %q", row.LastError)
	}
	if !row.ScheduledFor.After(testNow) {
		t.Error("scheduled_for must be deferred on requeue")
	}
}

func TestQueueRunExhaustsRetries(t *testing.T) {
	msg := queuedMessage()
	msg.RetryCount = 3 // already at the ceiling
	queue := newFakeQueue(msg)
	sender := &fakeSender{result: gateway.SendResult{Error: "timeout"}}
	svc := newTestQueueService(queue, sender)

	svc.Run(context.Background())

	row := queue.rows[msg.ID]
	if row.Status != models.QueueStatusFailed {
		t.Fatalf("status = %q, want failed", row.Status)
	}
	if row.RetryCount != 4 {
		t.Errorf("retry count = %d, want 4", row.RetryCount)
	}

	// Terminal: a later run must never touch it again.
	sender.calls = nil
	svc.Run(context.Background())
	if len(sender.calls) != 0 {
		t.Error("failed message must never be processed again")
	}
	if queue.rows[msg.ID].Status != models.QueueStatusFailed {
		t.Error("failed is terminal")
	}
}

func TestQueueRunRespectsProcessingFence(t *testing.T) {
	msg := queuedMessage()
	queue := newFakeQueue(msg)
	queue.claimDeny[msg.ID] = true
	sender := &fakeSender{result: gateway.SendResult{Sent: true}}

	summary := newTestQueueService(queue, sender).Run(context.Background())

	if len(sender.calls) != 0 {
		t.Error("an unclaimed message must not be sent")
	}
	if summary.Items[0].Status != ItemSkippedClaimed {
		t.Errorf("item status = %q", summary.Items[0].Status)
	}
}

func TestBackoffDelay(t *testing.T) {
	cases := []struct {
		retry int
		want  time.Duration
	}{
		{1, time.Minute},
		{2, 2 * time.Minute},
		{3, 4 * time.Minute},
		{10, maxBackoff},
	}
	for _, tc := range cases {
		if got := backoffDelay(tc.retry); got != tc.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tc.retry, got, tc.want)
		}
	}
}
