package downloadinvoice

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	Invoice(ctx context.Context, id string) ([]byte, error)
}

// DownloadInvoice streams the stored invoice PDF, rendering it first if it is missing.
func DownloadInvoice(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	pdf, err := service.Invoice(r.Context(), id)
	if err != nil {
		response.OrderError(w, err, "Failed to load invoice.")
		slog.Error("Error loading invoice", "error", err, "order_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, path.Base(id)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("Error sending invoice", "error", err, "order_id", id)
	}
}
