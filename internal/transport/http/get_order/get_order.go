package getorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	Get(ctx context.Context, id string) (order.Order, error)
}

// GetOrder handles GET /admin/orders/{id}.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	o, err := service.Get(r.Context(), id)
	if err != nil {
		slog.Error("Error fetching order", "error", err, "order_id", id)
		response.OrderError(w, err, "Failed to fetch order.")

		return
	}

	response.JSON(w, http.StatusOK, o)
}
