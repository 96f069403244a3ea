package resendinvoice

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/services/fulfillment"
)

type serviceFunc func(ctx context.Context, id string) error

func (f serviceFunc) Resend(ctx context.Context, id string) error {
	return f(ctx, id)
}

func TestResendInvoice(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "sent", wantStatus: http.StatusOK, wantBody: `{"success":true}`},
		{
			name:       "unknown order",
			err:        order.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"message":"Order not found."}`,
		},
		{
			name:       "email provider failure",
			err:        fmt.Errorf("%w: notify: quota", fulfillment.ErrFulfillment),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Failed to resend invoice."}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotID string
			svc := serviceFunc(func(_ context.Context, id string) error {
				gotID = id

				return tc.err
			})
			router := chi.NewRouter()
			router.Post("/admin/orders/{id}/invoice/resend", func(w http.ResponseWriter, r *http.Request) {
				ResendInvoice(w, r, svc)
			})
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/orders/o-1/invoice/resend", nil))

			assert.Equal(t, "o-1", gotID)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}
