package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/styleaura/storefront/internal/dal/interfaces/ieventrepo"
	"github.com/styleaura/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/styleaura/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/styleaura/storefront/internal/dal/interfaces/isessionrepo"
	"github.com/styleaura/storefront/internal/dal/mongo"
	"github.com/styleaura/storefront/internal/dal/postgres"
	"github.com/styleaura/storefront/internal/dal/rabbitmq"
	"github.com/styleaura/storefront/internal/dal/redis"
	eventrepo "github.com/styleaura/storefront/internal/dal/repositories/event"
	fsrepo "github.com/styleaura/storefront/internal/dal/repositories/invoice/fs"
	mongorepo "github.com/styleaura/storefront/internal/dal/repositories/order/mongo"
	postgresrepo "github.com/styleaura/storefront/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/styleaura/storefront/internal/dal/repositories/outbox/postgres"
	memoryrepo "github.com/styleaura/storefront/internal/dal/repositories/session/memory"
	redisrepo "github.com/styleaura/storefront/internal/dal/repositories/session/redis"
	"github.com/styleaura/storefront/internal/email"
	"github.com/styleaura/storefront/internal/email/brevo"
	"github.com/styleaura/storefront/internal/email/failover"
	"github.com/styleaura/storefront/internal/email/smtp"
	"github.com/styleaura/storefront/internal/invoice"
	"github.com/styleaura/storefront/internal/metrics"
	"github.com/styleaura/storefront/internal/otel"
	"github.com/styleaura/storefront/internal/service/models/currency"
	"github.com/styleaura/storefront/internal/service/services/adminsvc"
	"github.com/styleaura/storefront/internal/service/services/fulfillment"
	"github.com/styleaura/storefront/internal/service/services/newslettersvc"
	"github.com/styleaura/storefront/internal/service/services/ordersvc"
	httptransport "github.com/styleaura/storefront/internal/transport/http"
	outboxworker "github.com/styleaura/storefront/internal/worker/outbox"
)

type closer struct {
	name  string
	close func() error
}

// App represents the application.
type App struct {
	transport *httptransport.HTTPTransport
	worker    *outboxworker.Worker
	otel      *otel.OtelController
	closers   []closer
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	a := &App{}
	if viper.GetBool("tracing.enabled") {
		a.otel = otel.MustInitOtel()
	}
	m := metrics.New()

	orderRepo, outboxRepo := a.mustNewStorage()
	eventRepo := a.mustNewEventRepository(outboxRepo)
	sessionRepo := a.mustNewSessionRepository()

	brevoClient := brevo.MustNewClientFromConfig()
	converter := currency.MustNewConverterFromConfig()

	fulfillmentSvc := fulfillment.MustNewService(
		fulfillment.WithOrderRepository(orderRepo),
		fulfillment.WithInvoiceRepository(fsrepo.NewInvoiceFSRepository(afero.NewOsFs(), invoiceDir())),
		fulfillment.WithEventRepository(eventRepo),
		fulfillment.WithRenderer(mustNewRenderer()),
		fulfillment.WithMailer(mustNewMailer(brevoClient)),
		fulfillment.WithConverter(converter),
		fulfillment.WithMetrics(m),
		fulfillment.WithSender(viper.GetString("business.name"), viper.GetString("business.email")),
		fulfillment.WithStrictValidation(viper.GetBool("orders.strict_validation")),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepo),
		ordersvc.WithEventRepository(eventRepo),
		ordersvc.WithConverter(converter),
		ordersvc.WithUPI(
			viper.GetString("payment.upi_id"),
			viper.GetString("payment.payee_name"),
			viper.GetString("payment.qr_base_url"),
		),
	)

	adminEmail, adminHash := adminsvc.MustCredentialsFromEnv()
	adminSvc := adminsvc.MustNewAdminService(
		adminsvc.WithCredentials(adminEmail, adminHash),
		adminsvc.WithSessionRepository(sessionRepo),
		adminsvc.WithSessionTTL(viper.GetDuration("session.ttl")),
	)

	newsletterSvc := newslettersvc.NewNewsletterService(
		brevoClient,
		slice.Map(viper.GetIntSlice("newsletter.list_ids"), func(_ int, id int) int64 { return int64(id) }),
	)

	a.transport = httptransport.MustNewHTTPTransport(
		httptransport.WithFulfillmentService(fulfillmentSvc),
		httptransport.WithOrderService(orderSvc),
		httptransport.WithAdminService(adminSvc),
		httptransport.WithNewsletterService(newsletterSvc),
		httptransport.WithMetrics(m),
	)
	a.transport.RegisterRoutes()

	return a
}

// mustNewStorage connects the configured order store. The outbox needs Postgres
// and is nil otherwise.
func (a *App) mustNewStorage() (iorderrepo.IOrderRepository, ioutboxrepo.IOutboxRepository) {
	switch driver := viper.GetString("storage.driver"); driver {
	case "mongo":
		client := mongo.MustNewClient()
		a.closers = append(a.closers, closer{name: "MongoDB connection", close: client.Close})

		return mongorepo.NewMongoOrderRepository(client.Database().Collection("orders")), nil
	case "", "postgres":
		client := postgres.MustNewClient()
		a.closers = append(a.closers, closer{name: "Database connection", close: client.Close})

		return postgresrepo.NewPostgresOrderRepository(client.DB()), outboxrepo.NewOutboxRepository(client.DB())
	default:
		panic("unknown storage.driver: " + driver)
	}
}

func (a *App) mustNewEventRepository(outboxRepo ioutboxrepo.IOutboxRepository) ieventrepo.IEventRepository {
	if !viper.GetBool("rabbitmq.enabled") {
		return eventrepo.NewEventLogRepository()
	}

	client := rabbitmq.MustNewClient()
	a.closers = append(a.closers, closer{name: "RabbitMQ connection", close: client.Close})
	if outboxRepo != nil {
		a.worker = outboxworker.NewWorker(outboxRepo, client)
	}

	return eventrepo.NewEventRabbitMQRepository(client, outboxRepo)
}

func (a *App) mustNewSessionRepository() isessionrepo.ISessionRepository {
	switch driver := viper.GetString("session.driver"); driver {
	case "redis":
		client := redis.MustNewClient()
		a.closers = append(a.closers, closer{name: "Redis connection", close: client.Close})

		return redisrepo.NewSessionRedisRepository(client)
	case "", "memory":
		return memoryrepo.NewSessionMemoryRepository()
	default:
		panic("unknown session.driver: " + driver)
	}
}

func mustNewMailer(brevoClient *brevo.Client) email.Sender {
	switch provider := viper.GetString("email.provider"); provider {
	case "", "brevo":
		return brevoClient
	case "smtp":
		return smtp.MustNewSenderFromEnv()
	case "failover":
		return failover.NewSender(brevoClient, smtp.MustNewSenderFromEnv())
	default:
		panic("unknown email.provider: " + provider)
	}
}

func mustNewRenderer() invoice.Renderer {
	switch renderer := viper.GetString("invoice.renderer"); renderer {
	case "", "fpdf":
		return invoice.NewPDFRenderer()
	case "chromedp":
		return invoice.NewChromeRenderer(
			viper.GetString("invoice.chrome_url"),
			viper.GetDuration("invoice.chrome_timeout"),
		)
	default:
		panic("unknown invoice.renderer: " + renderer)
	}
}

func invoiceDir() string {
	if dir := viper.GetString("invoice.dir"); dir != "" {
		return dir
	}

	return "invoices"
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	if a.worker != nil {
		go a.worker.Start(context.Background())
	}

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.worker != nil {
		a.worker.Stop()
	}

	for _, c := range a.closers {
		if err := c.close(); err != nil {
			slog.Error(c.name+" close error", "error", err)
		} else {
			slog.Info(c.name + " closed gracefully")
		}
	}

	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			slog.Error("Tracer provider shutdown error", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
}
