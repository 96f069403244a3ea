package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/styleaura/storefront/internal/service/models/outbox"
)

var outboxColumns = []string{
	"queue_name",
	"event_type",
	"payload",
	"content_type",
	"retry_count",
	"max_retries",
	"last_error",
	"created_at",
	"updated_at",
	"next_retry_at",
}

type outboxDal struct {
	ID          int64     `db:"id"`
	QueueName   string    `db:"queue_name"`
	EventType   string    `db:"event_type"`
	Payload     []byte    `db:"payload"`
	ContentType string    `db:"content_type"`
	RetryCount  int       `db:"retry_count"`
	MaxRetries  int       `db:"max_retries"`
	LastError   string    `db:"last_error"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	NextRetryAt time.Time `db:"next_retry_at"`
}

func (d *outboxDal) toModel() outbox.OutboxMessage {
	return outbox.OutboxMessage{
		ID:          d.ID,
		QueueName:   d.QueueName,
		EventType:   d.EventType,
		Payload:     d.Payload,
		ContentType: d.ContentType,
		RetryCount:  d.RetryCount,
		MaxRetries:  d.MaxRetries,
		LastError:   d.LastError,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		NextRetryAt: d.NextRetryAt,
	}
}

// OutboxRepository implements the outbox repository for PostgreSQL.
type OutboxRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewOutboxRepository creates a new outbox repository.
func NewOutboxRepository(db *sqlx.DB) *OutboxRepository {
	return &OutboxRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert adds a new message to the outbox.
func (r *OutboxRepository) Insert(ctx context.Context, msg outbox.OutboxMessage) error {
	query, args, err := r.sb.Insert("outbox").
		Columns(outboxColumns...).
		Values(
			msg.QueueName,
			msg.EventType,
			msg.Payload,
			msg.ContentType,
			msg.RetryCount,
			msg.MaxRetries,
			msg.LastError,
			msg.CreatedAt,
			msg.UpdatedAt,
			msg.NextRetryAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert outbox message: %w", err)
	}

	return nil
}

// GetPendingMessages retrieves messages that are ready for retry.
func (r *OutboxRepository) GetPendingMessages(
	ctx context.Context,
	limit int,
) ([]outbox.OutboxMessage, error) {
	query, args, err := r.sb.Select(append([]string{"id"}, outboxColumns...)...).
		From("outbox").
		Where(sq.LtOrEq{"next_retry_at": time.Now()}).
		Where(sq.Expr("retry_count < max_retries")).
		OrderBy("next_retry_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dals []outboxDal
	if err := sqlx.SelectContext(ctx, r.db, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query outbox messages: %w", err)
	}

	messages := make([]outbox.OutboxMessage, 0, len(dals))
	for i := range dals {
		messages = append(messages, dals[i].toModel())
	}

	return messages, nil
}

// Delete removes a message from the outbox after successful delivery.
func (r *OutboxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("outbox").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete outbox message: %w", err)
	}

	return nil
}

// UpdateRetry updates retry count and error information.
func (r *OutboxRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	query, args, err := r.sb.Update("outbox").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update outbox message: %w", err)
	}

	return nil
}
