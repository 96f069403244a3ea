package httptransport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/styleaura/storefront/internal/metrics"
	"github.com/styleaura/storefront/internal/service/models/analytics"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/models/payment"
	"github.com/styleaura/storefront/internal/service/services/adminsvc"
	adminsession "github.com/styleaura/storefront/internal/transport/http/admin_session"
)

type stubServices struct {
	orders []order.Order
}

func (s *stubServices) PlaceOrder(_ context.Context, o order.Order) (order.Order, error) {
	o.ID = "new-id"

	return o, nil
}

func (s *stubServices) Resend(context.Context, string) error { return nil }

func (s *stubServices) Invoice(context.Context, string) ([]byte, error) { return []byte("%PDF"), nil }

func (s *stubServices) List(context.Context, order.QueryOrdersModel) ([]order.Order, error) {
	return s.orders, nil
}

func (s *stubServices) Get(_ context.Context, id string) (order.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}

	return order.Order{}, order.ErrNotFound
}

func (s *stubServices) UpdateStatus(context.Context, string, order.StatusUpdate) error { return nil }

func (s *stubServices) Analytics(context.Context) (analytics.Analytics, error) {
	return analytics.Analytics{TotalOrders: len(s.orders)}, nil
}

func (s *stubServices) PaymentLink(_ context.Context, id string) (payment.Link, error) {
	return payment.Link{OrderID: id}, nil
}

func (s *stubServices) Subscribe(context.Context, string) error { return nil }

type stubAdmin struct{}

func (stubAdmin) Login(_ context.Context, email, password string) (string, error) {
	if email == "admin@styleaura.in" && password == "secret" {
		return "tok", nil
	}

	return "", adminsvc.ErrInvalidCredentials
}

func (stubAdmin) Logout(context.Context, string) error { return nil }

func (stubAdmin) IsAdmin(_ context.Context, token string) (bool, error) { return token == "tok", nil }

func (stubAdmin) SessionTTL() time.Duration { return time.Hour }

func newTestTransport(t *testing.T) http.Handler {
	t.Helper()
	svc := &stubServices{orders: []order.Order{{ID: "a"}}}
	h := MustNewHTTPTransport(
		WithFulfillmentService(svc),
		WithOrderService(svc),
		WithNewsletterService(svc),
		WithAdminService(stubAdmin{}),
		WithMetrics(metrics.New()),
		WithCookie(adminsession.Cookie{Name: "sid"}),
	)
	h.RegisterRoutes()

	return h.Handler()
}

func do(h http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	h := newTestTransport(t)

	rec := do(h, http.MethodPost, "/api/orders", `{"name":"Asha","items":[],"total":0}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"orderId":"new-id"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/orders/a/payment", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/newsletter", `{"email":"a@b.in"}`).Code)
	assert.JSONEq(t, `{"isAdmin":false}`, do(h, http.MethodGet, "/api/admin/check", "").Body.String())
}

func TestRoutes_AdminEndpointsRequireSession(t *testing.T) {
	h := newTestTransport(t)
	protected := []struct{ method, target string }{
		{http.MethodGet, "/api/orders"},
		{http.MethodPut, "/api/orders/a/status"},
		{http.MethodPost, "/api/admin/logout"},
		{http.MethodGet, "/api/admin/analytics"},
		{http.MethodGet, "/api/admin/orders/a"},
		{http.MethodGet, "/api/admin/orders/a/invoice"},
		{http.MethodPost, "/api/admin/orders/a/invoice/resend"},
	}
	for _, p := range protected {
		t.Run(p.method+" "+p.target, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(h, p.method, p.target, `{}`).Code)
		})
	}
}

func TestRoutes_AdminFlow(t *testing.T) {
	h := newTestTransport(t)

	assert.Equal(t, http.StatusUnauthorized,
		do(h, http.MethodPost, "/api/admin/login", `{"email":"admin@styleaura.in","password":"x"}`).Code)

	rec := do(h, http.MethodPost, "/api/admin/login", `{"email":"admin@styleaura.in","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	rec = do(h, http.MethodGet, "/api/orders", "", cookies[0])
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"a","name":"","email":"","phone":"","address":"","city":"","state":"","zip":"",
		"items":null,"total":0,"status":"","paymentStatus":"","createdAt":"0001-01-01T00:00:00Z",
		"updatedAt":"0001-01-01T00:00:00Z"}]`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/admin/orders/a", "", cookies[0])
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"a"`)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/admin/orders/b", "", cookies[0]).Code)

	rec = do(h, http.MethodGet, "/api/admin/orders/a/invoice", "", cookies[0])
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestRoutes_MetricsExposeRoutePatterns(t *testing.T) {
	h := newTestTransport(t)
	do(h, http.MethodGet, "/api/orders/a/payment", "")

	rec := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/api/orders/{id}/payment"`)
}

func TestRoutes_MetricsCollapseUnmatchedPaths(t *testing.T) {
	h := newTestTransport(t)
	do(h, http.MethodGet, "/api/no-such-route-1", "")
	do(h, http.MethodGet, "/wp-login.php", "")

	body := do(h, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, `path="unmatched"`)
	assert.NotContains(t, body, "no-such-route-1")
	assert.NotContains(t, body, "wp-login.php")
}
