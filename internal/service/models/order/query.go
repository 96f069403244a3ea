package order

import "time"

// QueryOrdersModel represents filter parameters for listing orders.
// Zero values mean "no filter".
type QueryOrdersModel struct {
	Status        ShippingStatus `json:"status,omitempty"`
	PaymentStatus PaymentStatus  `json:"paymentStatus,omitempty"`
	From          time.Time      `json:"from,omitempty"`
	To            time.Time      `json:"to,omitempty"`
}
