package eventrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/styleaura/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/styleaura/storefront/internal/dal/rabbitmq"
	"github.com/styleaura/storefront/internal/service/models/event"
	"github.com/styleaura/storefront/internal/service/models/outbox"
	"golang.org/x/sync/errgroup"
)

const contentType = "application/json"

type publisher interface {
	Publish(ctx context.Context, queue, contentType string, body []byte) error
}

// EventRabbitMQRepository publishes order events to a queue and parks
// undeliverable ones in the outbox.
type EventRabbitMQRepository struct {
	client     publisher
	outbox     ioutboxrepo.IOutboxRepository
	queue      string
	maxRetries int
}

// NewEventRabbitMQRepository declares the events queue and returns the repository.
func NewEventRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *EventRabbitMQRepository {
	name := viper.GetString("rabbitmq.queue")
	if name == "" {
		name = "storefront.orders"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    name,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return newRepository(client, outboxRepo, queue.Name, viper.GetInt("rabbitmq.outbox.max_retries"))
}

func newRepository(
	client publisher,
	outboxRepo ioutboxrepo.IOutboxRepository,
	queue string,
	maxRetries int,
) *EventRabbitMQRepository {
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &EventRabbitMQRepository{
		client:     client,
		outbox:     outboxRepo,
		queue:      queue,
		maxRetries: maxRetries,
	}
}

// Publish sends each event. Events that fail to publish are written to the
// outbox when one is configured; an error is returned only when that also fails.
func (r *EventRabbitMQRepository) Publish(ctx context.Context, events ...event.OrderEvent) error {
	// Detached so a finished request does not cancel in-flight publishes.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	g, gctx := errgroup.WithContext(pubCtx)
	g.SetLimit(3)

	for _, ev := range events {
		g.Go(func() error {
			body, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}

			pubErr := r.client.Publish(gctx, r.queue, contentType, body)
			if pubErr == nil {
				return nil
			}

			if r.outbox == nil {
				return fmt.Errorf("failed to publish event: %w", pubErr)
			}

			slog.WarnContext(gctx, "Failed to publish order event, storing in outbox",
				"order_id", ev.OrderID,
				"event_type", ev.Type,
				"error", pubErr,
			)

			msg := outbox.NewMessage(r.queue, string(ev.Type), body, r.maxRetries, pubErr)
			if err := r.outbox.Insert(pubCtx, msg); err != nil {
				return fmt.Errorf("failed to store event in outbox: %w", err)
			}

			return nil
		})
	}

	return g.Wait()
}

// EventLogRepository only logs events. Used when RabbitMQ is disabled.
type EventLogRepository struct{}

func NewEventLogRepository() *EventLogRepository {
	return &EventLogRepository{}
}

func (r *EventLogRepository) Publish(ctx context.Context, events ...event.OrderEvent) error {
	for _, ev := range events {
		slog.InfoContext(ctx, "Order event",
			"event_type", ev.Type,
			"order_id", ev.OrderID,
			"status", ev.Status,
			"payment_status", ev.PaymentStatus,
		)
	}

	return nil
}
