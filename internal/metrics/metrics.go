package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedPath labels requests that matched no route.
const unmatchedPath = "unmatched"

// Metrics holds the storefront collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration     *prometheus.SummaryVec
	requests            *prometheus.CounterVec
	ordersPlaced        prometheus.Counter
	fulfillmentFailures *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestDuration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		ordersPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders persisted by the checkout workflow",
		}),
		fulfillmentFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_failures_total",
				Help: "Checkout workflow failures by step",
			},
			[]string{"step"},
		),
	}
}

func (m *Metrics) OrderPlaced() {
	m.ordersPlaced.Inc()
}

func (m *Metrics) FulfillmentFailed(step string) {
	m.fulfillmentFailures.WithLabelValues(step).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency labelled by route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := unmatchedPath
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		m.requestDuration.WithLabelValues(r.Method, path, code).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, path, code).Inc()
	})
}
