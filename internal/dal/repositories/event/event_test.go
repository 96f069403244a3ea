package eventrepo

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	outboxrepomocks "github.com/styleaura/storefront/internal/dal/interfaces/ioutboxrepo/mocks"
	"github.com/styleaura/storefront/internal/service/models/event"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/models/outbox"
	"go.uber.org/mock/gomock"
)

type fakePublisher struct {
	mu      sync.Mutex
	bodies  [][]byte
	failFor map[string]bool
}

func (p *fakePublisher) Publish(_ context.Context, _, _ string, body []byte) error {
	var ev event.OrderEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	if p.failFor[ev.OrderID] {
		return errors.New("channel closed")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, body)

	return nil
}

func TestEventRabbitMQRepository_Publish(t *testing.T) {
	shipped := order.ShippingShipped
	events := []event.OrderEvent{
		event.NewOrderCreated(&order.Order{ID: "a", Email: "a@example.com"}),
		event.NewStatusChanged("b", order.StatusUpdate{Status: &shipped}),
	}

	testCases := []struct {
		name    string
		failFor map[string]bool
		mock    func(ctrl *gomock.Controller) *outboxrepomocks.MockIOutboxRepository
		wantPub int
		wantErr bool
	}{
		{
			name: "all delivered",
			mock: func(ctrl *gomock.Controller) *outboxrepomocks.MockIOutboxRepository {
				return outboxrepomocks.NewMockIOutboxRepository(ctrl)
			},
			wantPub: 2,
		},
		{
			name:    "failed publish goes to outbox",
			failFor: map[string]bool{"b": true},
			mock: func(ctrl *gomock.Controller) *outboxrepomocks.MockIOutboxRepository {
				repo := outboxrepomocks.NewMockIOutboxRepository(ctrl)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg outbox.OutboxMessage) error {
						assert.Equal(t, "order.status_changed", msg.EventType)
						assert.Equal(t, "storefront.orders", msg.QueueName)
						assert.Equal(t, "channel closed", msg.LastError)
						assert.Equal(t, 5, msg.MaxRetries)

						return nil
					})

				return repo
			},
			wantPub: 1,
		},
		{
			name:    "outbox failure is reported",
			failFor: map[string]bool{"a": true},
			mock: func(ctrl *gomock.Controller) *outboxrepomocks.MockIOutboxRepository {
				repo := outboxrepomocks.NewMockIOutboxRepository(ctrl)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

				return repo
			},
			wantPub: 1,
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			pub := &fakePublisher{failFor: tc.failFor}
			repo := newRepository(pub, tc.mock(ctrl), "storefront.orders", 0)

			err := repo.Publish(context.Background(), events...)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, pub.bodies, tc.wantPub)
		})
	}
}

func TestEventRabbitMQRepository_PublishWithoutOutbox(t *testing.T) {
	pub := &fakePublisher{failFor: map[string]bool{"a": true}}
	repo := newRepository(pub, nil, "storefront.orders", 3)

	err := repo.Publish(context.Background(), event.NewOrderCreated(&order.Order{ID: "a"}))
	assert.Error(t, err)
}

func TestEventLogRepository_Publish(t *testing.T) {
	repo := NewEventLogRepository()
	assert.NoError(t, repo.Publish(context.Background(), event.NewOrderCreated(&order.Order{ID: "a"})))
}
