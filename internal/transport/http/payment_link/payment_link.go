package paymentlink

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/styleaura/storefront/internal/service/models/payment"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	PaymentLink(ctx context.Context, id string) (payment.Link, error)
}

// PaymentLink returns the UPI link and QR code for an order.
func PaymentLink(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	link, err := service.PaymentLink(r.Context(), id)
	if err != nil {
		slog.Error("Error building payment link", "error", err, "order_id", id)
		response.OrderError(w, err, "Failed to build payment link.")

		return
	}

	response.JSON(w, http.StatusOK, link)
}
