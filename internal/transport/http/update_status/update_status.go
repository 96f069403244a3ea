package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	UpdateStatus(ctx context.Context, id string, upd order.StatusUpdate) error
}

// updateStatusRequest carries the fields to change. Omitted fields stay as they are.
type updateStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

func (r *updateStatusRequest) toModel() order.StatusUpdate {
	var upd order.StatusUpdate
	if r.Status != nil {
		s := order.ShippingStatus(*r.Status)
		upd.Status = &s
	}
	if r.PaymentStatus != nil {
		p := order.PaymentStatus(*r.PaymentStatus)
		upd.PaymentStatus = &p
	}

	return upd
}

// UpdateStatus handles PUT /orders/{id}/status.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body.")
		slog.Error("Error decoding request body for status update", "error", err)

		return
	}

	err := service.UpdateStatus(r.Context(), id, req.toModel())
	if err != nil {
		slog.Error("Error updating order status", "error", err, "order_id", id)
		if errors.Is(err, order.ErrInvalidStatus) {
			response.Error(w, http.StatusBadRequest, "Invalid status value.")

			return
		}
		response.OrderError(w, err, "Failed to update order status.")

		return
	}

	response.Success(w)
}
