package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/services/fulfillment"
)

type fakeService struct {
	got order.Order
	id  string
	err error
}

func (f *fakeService) PlaceOrder(_ context.Context, o order.Order) (order.Order, error) {
	f.got = o
	o.ID = f.id

	return o, f.err
}

const body = `{"name":"Asha","email":"asha@example.com","phone":"555","address":"1 Main",
"city":"Pune","state":"MH","zip":"411001","items":[{"name":"Denim Shirt","price":20,"quantity":2}],"total":40}`

func TestPlaceOrder(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "created",
			body:       body,
			wantStatus: http.StatusCreated,
			wantBody:   map[string]any{"success": true, "orderId": "abc"},
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "message": "Invalid request body."},
		},
		{
			name:       "persist failure",
			body:       body,
			err:        fmt.Errorf("%w: persist: %w", fulfillment.ErrPlaceOrder, errors.New("db down")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "message": "Failed to place order."},
		},
		{
			name:       "email failure after persist",
			body:       body,
			err:        fmt.Errorf("%w: notify: %w", fulfillment.ErrFulfillment, errors.New("quota")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "message": "Failed to place order."},
		},
		{
			name:       "strict validation",
			body:       body,
			err:        fmt.Errorf("%w: email", fulfillment.ErrInvalidOrder),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "message": "Invalid order details."},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{id: "abc", err: tc.err}
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			PlaceOrder(rec, req, svc)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.wantBody, got)
		})
	}
}

func TestPlaceOrder_MapsRequest(t *testing.T) {
	svc := &fakeService{id: "abc"}
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))

	PlaceOrder(httptest.NewRecorder(), req, svc)

	assert.Equal(t, "Pune", svc.got.City)
	assert.Equal(t, 40.0, svc.got.Total)
	assert.Equal(t, []order.LineItem{{Name: "Denim Shirt", Price: 20, Quantity: 2}}, svc.got.Items)
}
