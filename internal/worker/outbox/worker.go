package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/styleaura/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/styleaura/storefront/internal/service/models/outbox"
)

const maxBackoff = time.Hour

type publisher interface {
	Publish(ctx context.Context, queue, contentType string, body []byte) error
}

// Worker redelivers order events that failed to reach the broker.
type Worker struct {
	outboxRepo    ioutboxrepo.IOutboxRepository
	publisher     publisher
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new outbox worker.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		outboxRepo:    outboxRepo,
		publisher:     publisher,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start begins processing messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// backoff doubles the retry interval per attempt, capped at maxBackoff.
func (w *Worker) backoff(retryCount int) time.Duration {
	d := w.retryInterval
	for i := 1; i < retryCount && d < maxBackoff; i++ {
		d *= 2
	}

	return min(d, maxBackoff)
}

// processMessages retrieves and processes pending messages from the outbox.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	for _, msg := range messages {
		w.process(ctx, msg)
	}
}

func (w *Worker) process(ctx context.Context, msg outbox.OutboxMessage) {
	err := w.publisher.Publish(ctx, msg.QueueName, msg.ContentType, msg.Payload)
	if err == nil {
		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete message from outbox after successful publish",
				"outbox_id", msg.ID,
				"error", err,
			)

			return
		}
		slog.Info("Message successfully published and removed from outbox",
			"outbox_id", msg.ID,
			"event_type", msg.EventType,
		)

		return
	}

	msg.RetryCount++
	nextRetryAt := time.Now().Add(w.backoff(msg.RetryCount))
	if msg.Exhausted() {
		// Kept in the table for inspection; GetPendingMessages skips it from now on.
		slog.Error("Giving up on outbox message",
			"outbox_id", msg.ID,
			"event_type", msg.EventType,
			"retry_count", msg.RetryCount,
			"error", err,
		)
	} else {
		slog.Warn("Failed to publish message from outbox, will retry",
			"outbox_id", msg.ID,
			"retry_count", msg.RetryCount,
			"next_retry", nextRetryAt,
			"error", err,
		)
	}

	if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, msg.RetryCount, err.Error(), nextRetryAt); err != nil {
		slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
	}
}
