package getanalytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/styleaura/storefront/internal/service/models/analytics"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	Analytics(ctx context.Context) (analytics.Analytics, error)
}

// GetAnalytics returns the sales summary for the admin dashboard.
func GetAnalytics(w http.ResponseWriter, r *http.Request, service service) {
	res, err := service.Analytics(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch analytics.")
		slog.Error("Error computing analytics", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, res)
}
