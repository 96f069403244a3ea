package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/styleaura/storefront/internal/metrics"
	"github.com/styleaura/storefront/internal/service/models/analytics"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/models/payment"
	adminsession "github.com/styleaura/storefront/internal/transport/http/admin_session"
	createorder "github.com/styleaura/storefront/internal/transport/http/create_order"
	downloadinvoice "github.com/styleaura/storefront/internal/transport/http/download_invoice"
	getanalytics "github.com/styleaura/storefront/internal/transport/http/get_analytics"
	getorder "github.com/styleaura/storefront/internal/transport/http/get_order"
	listorders "github.com/styleaura/storefront/internal/transport/http/list_orders"
	paymentlink "github.com/styleaura/storefront/internal/transport/http/payment_link"
	resendinvoice "github.com/styleaura/storefront/internal/transport/http/resend_invoice"
	subscribenewsletter "github.com/styleaura/storefront/internal/transport/http/subscribe_newsletter"
	updatestatus "github.com/styleaura/storefront/internal/transport/http/update_status"
	"github.com/styleaura/storefront/pkg/http/middleware/trace"
	"github.com/styleaura/storefront/pkg/logger"
)

type fulfillmentService interface {
	PlaceOrder(ctx context.Context, o order.Order) (order.Order, error)
	Resend(ctx context.Context, id string) error
	Invoice(ctx context.Context, id string) ([]byte, error)
}

type orderService interface {
	List(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	Get(ctx context.Context, id string) (order.Order, error)
	UpdateStatus(ctx context.Context, id string, upd order.StatusUpdate) error
	Analytics(ctx context.Context) (analytics.Analytics, error)
	PaymentLink(ctx context.Context, id string) (payment.Link, error)
}

type adminService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	IsAdmin(ctx context.Context, token string) (bool, error)
	SessionTTL() time.Duration
}

type newsletterService interface {
	Subscribe(ctx context.Context, email string) error
}

type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	fulfillment fulfillmentService
	orders      orderService
	admin       adminService
	newsletter  newsletterService
	metrics     *metrics.Metrics
	cookie      adminsession.Cookie
}

type option func(*HTTPTransport)

// MustNewHTTPTransport builds the transport and panics if a service is missing.
func MustNewHTTPTransport(opts ...option) *HTTPTransport {
	h := &HTTPTransport{cookie: adminsession.CookieFromConfig()}
	for _, opt := range opts {
		opt(h)
	}
	if h.fulfillment == nil || h.orders == nil || h.admin == nil || h.newsletter == nil {
		panic("http transport: fulfillment, order, admin and newsletter services are required")
	}

	h.router = newRouter(h.metrics)
	h.server = newServer(h.router)

	return h
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithFulfillmentService(s fulfillmentService) option {
	return func(h *HTTPTransport) {
		h.fulfillment = s
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderService(s orderService) option {
	return func(h *HTTPTransport) {
		h.orders = s
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithAdminService(s adminService) option {
	return func(h *HTTPTransport) {
		h.admin = s
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithNewsletterService(s newsletterService) option {
	return func(h *HTTPTransport) {
		h.newsletter = s
	}
}

// WithMetrics instruments every request and exposes GET /metrics.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Metrics) option {
	return func(h *HTTPTransport) {
		h.metrics = m
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCookie(c adminsession.Cookie) option {
	return func(h *HTTPTransport) {
		h.cookie = c
	}
}

func (h *HTTPTransport) Run() error {
	slog.Info("HTTP server listening", "addr", h.server.Addr)

	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	if h.metrics != nil {
		h.router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	requireAdmin := adminsession.RequireAdmin(h.admin, h.cookie)
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.placeOrder)
		r.Get("/orders/{id}/payment", h.paymentLink)
		r.Post("/newsletter", h.subscribe)
		r.Post("/admin/login", h.login)
		r.Get("/admin/check", h.checkAdmin)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/orders", h.listOrders)
			r.Put("/orders/{id}/status", h.updateStatus)
			r.Post("/admin/logout", h.logout)
			r.Get("/admin/analytics", h.analytics)
			r.Get("/admin/orders/{id}", h.getOrder)
			r.Get("/admin/orders/{id}/invoice", h.downloadInvoice)
			r.Post("/admin/orders/{id}/invoice/resend", h.resendInvoice)
		})
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	createorder.PlaceOrder(w, r, h.fulfillment)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orders)
}

func (h *HTTPTransport) paymentLink(w http.ResponseWriter, r *http.Request) {
	paymentlink.PaymentLink(w, r, h.orders)
}

func (h *HTTPTransport) analytics(w http.ResponseWriter, r *http.Request) {
	getanalytics.GetAnalytics(w, r, h.orders)
}

func (h *HTTPTransport) downloadInvoice(w http.ResponseWriter, r *http.Request) {
	downloadinvoice.DownloadInvoice(w, r, h.fulfillment)
}

func (h *HTTPTransport) resendInvoice(w http.ResponseWriter, r *http.Request) {
	resendinvoice.ResendInvoice(w, r, h.fulfillment)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	adminsession.Login(w, r, h.admin, h.cookie)
}

func (h *HTTPTransport) logout(w http.ResponseWriter, r *http.Request) {
	adminsession.Logout(w, r, h.admin, h.cookie)
}

func (h *HTTPTransport) checkAdmin(w http.ResponseWriter, r *http.Request) {
	adminsession.Check(w, r, h.admin, h.cookie)
}

func (h *HTTPTransport) subscribe(w http.ResponseWriter, r *http.Request) {
	subscribenewsletter.Subscribe(w, r, h.newsletter)
}

func newRouter(m *metrics.Metrics) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	if m != nil {
		router.Use(m.Middleware)
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	port := viper.GetString("server.http.port")
	if port == "" {
		port = "8080"
	}

	return &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
