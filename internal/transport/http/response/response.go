package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/styleaura/storefront/internal/service/models/order"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Error writes {success:false, message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Success: false, Message: message})
}

// Success writes {success:true}.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, successResponse{Success: true})
}

// OrderError maps order lookup failures to 400/404 and anything else to 500 with fallback.
func OrderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, order.ErrInvalidID):
		Error(w, http.StatusBadRequest, "Invalid order id.")
	case errors.Is(err, order.ErrNotFound):
		Error(w, http.StatusNotFound, "Order not found.")
	default:
		Error(w, http.StatusInternalServerError, fallback)
	}
}
