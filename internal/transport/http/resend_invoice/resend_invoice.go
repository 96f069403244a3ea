package resendinvoice

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	Resend(ctx context.Context, id string) error
}

// ResendInvoice re-renders and emails the invoice of an existing order.
func ResendInvoice(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	if err := service.Resend(r.Context(), id); err != nil {
		response.OrderError(w, err, "Failed to resend invoice.")
		slog.Error("Error resending invoice", "error", err, "order_id", id)

		return
	}

	response.Success(w)
}
