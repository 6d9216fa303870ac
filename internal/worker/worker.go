// Package worker runs the background job loop that turns review-outcome
// jobs into stored notifications.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/internal/notifications"
	"github.com/event-organizer/backend/pkg/queue"
)

// Worker consumes the notification queue and writes notification rows.
type Worker struct {
	queue  *queue.Queue
	repo   *notifications.Repository
	logger *zap.Logger
}

func New(q *queue.Queue, repo *notifications.Repository, logger *zap.Logger) *Worker {
	return &Worker{queue: q, repo: repo, logger: logger}
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopping")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		if err := w.process(ctx, job); err != nil {
			w.logger.Error("job failed",
				zap.String("job_id", job.ID),
				zap.Int("attempt", job.Attempt),
				zap.Error(err))
			if err := w.queue.Retry(ctx, job); err != nil {
				w.logger.Error("retry failed", zap.String("job_id", job.ID), zap.Error(err))
			}
			continue
		}
		w.logger.Info("job done", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
	}
}

func (w *Worker) process(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeReviewNotice:
		var payload queue.ReviewNoticePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		n := &models.Notification{
			UserID:    payload.UserID,
			RequestID: payload.RequestID,
			Status:    payload.Status,
			Message:   noticeMessage(payload),
		}
		return w.repo.Create(ctx, n)
	default:
		w.logger.Warn("unknown job type", zap.String("type", string(job.Type)))
		return nil
	}
}

func noticeMessage(p queue.ReviewNoticePayload) string {
	verb := "rejected"
	if p.Status == models.StatusApproved {
		verb = "approved"
	}
	return fmt.Sprintf("Your %s request for %s was %s", p.Action, p.RequestType, verb)
}
