package listorders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC 3339")

type service interface {
	List(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Status        string `schema:"status,omitempty"`
	PaymentStatus string `schema:"paymentStatus,omitempty"`
	From          string `schema:"from,omitempty"`
	To            string `schema:"to,omitempty"`
}

func (q *queryOrdersRequest) ToModel() (order.QueryOrdersModel, error) {
	var (
		model order.QueryOrdersModel
		err   error
	)
	if q.Status != "" {
		if model.Status, err = order.ParseShippingStatus(q.Status); err != nil {
			return model, err
		}
	}
	if q.PaymentStatus != "" {
		if model.PaymentStatus, err = order.ParsePaymentStatus(q.PaymentStatus); err != nil {
			return model, err
		}
	}
	if model.From, err = parseDate(q.From, false); err != nil {
		return model, err
	}
	if model.To, err = parseDate(q.To, true); err != nil {
		return model, err
	}

	return model, nil
}

// parseDate accepts a calendar day or a full timestamp. A day used as an
// upper bound covers the whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return t, nil
}

func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query parameters.")
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter, err := query.ToModel()
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error converting query to filter", "error", err)

		return
	}

	orders, err := service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch orders.")
		slog.Error("Error getting orders", "error", err)

		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	response.JSON(w, http.StatusOK, orders)
}
