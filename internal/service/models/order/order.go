package order

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no order matches the given identifier.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidID is returned when the identifier cannot belong to any order.
	ErrInvalidID = errors.New("invalid order id")
	// ErrInvalidStatus is returned for status values outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
)

// ShippingStatus is the admin-controlled delivery marker of an order.
type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "Pending"
	ShippingShipped   ShippingStatus = "Shipped"
	ShippingDelivered ShippingStatus = "Delivered"
)

func (s ShippingStatus) String() string {
	return string(s)
}

// ParseShippingStatus parses s into a ShippingStatus.
func ParseShippingStatus(s string) (ShippingStatus, error) {
	switch ShippingStatus(s) {
	case ShippingPending, ShippingShipped, ShippingDelivered:
		return ShippingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// PaymentStatus is set manually once an out-of-band payment is confirmed.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus parses s into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid:
		return PaymentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// LineItem is one product entry of an order. Price is in the catalog base unit.
type LineItem struct {
	Name     string  `json:"name"     bson:"name"     validate:"required"`
	Price    float64 `json:"price"    bson:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" bson:"quantity" validate:"gt=0"`
}

// Order represents a customer's checkout submission.
type Order struct {
	ID            string         `json:"id"            bson:"-"`
	Name          string         `json:"name"          bson:"name"    validate:"required"`
	Email         string         `json:"email"         bson:"email"   validate:"required,email"`
	Phone         string         `json:"phone"         bson:"phone"   validate:"required"`
	Address       string         `json:"address"       bson:"address" validate:"required"`
	City          string         `json:"city"          bson:"city"`
	State         string         `json:"state"         bson:"state"`
	Zip           string         `json:"zip"           bson:"zip"`
	Items         []LineItem     `json:"items"         bson:"items"   validate:"required,min=1,dive"`
	Total         float64        `json:"total"         bson:"total"   validate:"gte=0"`
	Status        ShippingStatus `json:"status"        bson:"status"`
	PaymentStatus PaymentStatus  `json:"paymentStatus" bson:"paymentStatus"`
	CreatedAt     time.Time      `json:"createdAt"     bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"     bson:"updatedAt"`
}

// ItemsTotal returns the sum of price × quantity over the line items.
// The stored Total is client supplied and may differ.
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}

	return sum
}

// StatusUpdate is a partial update of the status fields. Nil fields are left unchanged.
type StatusUpdate struct {
	Status        *ShippingStatus
	PaymentStatus *PaymentStatus
}

// Empty reports whether the update changes nothing.
func (u StatusUpdate) Empty() bool {
	return u.Status == nil && u.PaymentStatus == nil
}
