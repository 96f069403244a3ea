package subscribenewsletter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/styleaura/storefront/internal/service/services/newslettersvc"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

type service interface {
	Subscribe(ctx context.Context, email string) error
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func Subscribe(w http.ResponseWriter, r *http.Request, service service) {
	req := subscribeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body.")
		slog.Error("Error decoding request body for newsletter", "error", err)

		return
	}

	err := service.Subscribe(r.Context(), req.Email)
	if errors.Is(err, newslettersvc.ErrEmailRequired) {
		response.Error(w, http.StatusBadRequest, "Email is required.")

		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Subscription failed.")
		slog.Error("Error subscribing to newsletter", "error", err)

		return
	}

	response.Success(w)
}
