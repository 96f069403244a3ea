package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/services/fulfillment"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

const placeOrderFailed = "Failed to place order."

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// itemInCreateOrderRequest represents a cart line in a create order request.
type itemInCreateOrderRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// createOrderRequest represents a checkout submission.
type createOrderRequest struct {
	Name    string                     `json:"name"`
	Email   string                     `json:"email"`
	Phone   string                     `json:"phone"`
	Address string                     `json:"address"`
	City    string                     `json:"city"`
	State   string                     `json:"state"`
	Zip     string                     `json:"zip"`
	Items   []itemInCreateOrderRequest `json:"items"`
	Total   float64                    `json:"total"`
}

// toModel converts createOrderRequest to order.Order. Status fields are left to the workflow.
func (r *createOrderRequest) toModel() order.Order {
	items := make([]order.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.LineItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return order.Order{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
		Items:   items,
		Total:   r.Total,
	}
}

type createOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// PlaceOrder handles a checkout submission.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body.")
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), req.toModel())
	if err != nil {
		slog.Error("Error placing order", "error", err, "order_id", placed.ID)
		if errors.Is(err, fulfillment.ErrInvalidOrder) {
			response.Error(w, http.StatusBadRequest, "Invalid order details.")

			return
		}
		response.Error(w, http.StatusInternalServerError, placeOrderFailed)

		return
	}

	response.JSON(w, http.StatusCreated, createOrderResponse{Success: true, OrderID: placed.ID})
}
