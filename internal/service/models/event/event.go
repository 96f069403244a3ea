package event

import (
	"time"

	"github.com/styleaura/storefront/internal/service/models/order"
)

// Type identifies the kind of order event.
type Type string

const (
	TypeOrderCreated       Type = "order.created"
	TypeOrderStatusChanged Type = "order.status_changed"
)

// OrderEvent is published after an order is created or its statuses change.
type OrderEvent struct {
	Type          Type                 `json:"type"`
	OrderID       string               `json:"orderId"`
	Email         string               `json:"email,omitempty"`
	Status        order.ShippingStatus `json:"status,omitempty"`
	PaymentStatus order.PaymentStatus  `json:"paymentStatus,omitempty"`
	Total         float64              `json:"total,omitempty"`
	Items         []order.LineItem     `json:"items,omitempty"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// NewOrderCreated builds the event for a freshly persisted order.
func NewOrderCreated(o *order.Order) OrderEvent {
	return OrderEvent{
		Type:          TypeOrderCreated,
		OrderID:       o.ID,
		Email:         o.Email,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
		Items:         o.Items,
		OccurredAt:    time.Now(),
	}
}

// NewStatusChanged builds the event for a status update.
func NewStatusChanged(id string, upd order.StatusUpdate) OrderEvent {
	e := OrderEvent{
		Type:       TypeOrderStatusChanged,
		OrderID:    id,
		OccurredAt: time.Now(),
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		e.PaymentStatus = *upd.PaymentStatus
	}

	return e
}
