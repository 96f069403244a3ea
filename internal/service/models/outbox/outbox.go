package outbox

import (
	"time"
)

// OutboxMessage is an order event that could not be published and waits for redelivery.
type OutboxMessage struct {
	ID          int64
	QueueName   string
	EventType   string
	Payload     []byte
	ContentType string
	RetryCount  int
	MaxRetries  int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	NextRetryAt time.Time
}

// NewMessage creates a message that is due immediately.
func NewMessage(queue, eventType string, payload []byte, maxRetries int, cause error) OutboxMessage {
	now := time.Now()
	msg := OutboxMessage{
		QueueName:   queue,
		EventType:   eventType,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
	if cause != nil {
		msg.LastError = cause.Error()
	}

	return msg
}

// Exhausted reports whether no retries are left.
func (m *OutboxMessage) Exhausted() bool {
	return m.RetryCount >= m.MaxRetries
}
