package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/styleaura/storefront/internal/dal/interfaces/ieventrepo"
	"github.com/styleaura/storefront/internal/dal/interfaces/iinvoicerepo"
	"github.com/styleaura/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/styleaura/storefront/internal/email"
	"github.com/styleaura/storefront/internal/invoice"
	"github.com/styleaura/storefront/internal/service/models/currency"
	"github.com/styleaura/storefront/internal/service/models/event"
	"github.com/styleaura/storefront/internal/service/models/order"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	StepPersist = "persist"
	StepRender  = "render"
	StepNotify  = "notify"

	invoiceFilename = "invoice.pdf"

	// totalTolerance absorbs float noise when comparing the submitted total with the items.
	totalTolerance = 0.005
)

var (
	// ErrPlaceOrder means nothing was persisted.
	ErrPlaceOrder = errors.New("failed to place order")
	// ErrFulfillment means the order was persisted but a later step failed.
	ErrFulfillment = errors.New("order fulfillment incomplete")
	// ErrInvalidOrder is returned by strict validation.
	ErrInvalidOrder = errors.New("invalid order")
)

type metrics interface {
	OrderPlaced()
	FulfillmentFailed(step string)
}

type noopMetrics struct{}

func (noopMetrics) OrderPlaced()             {}
func (noopMetrics) FulfillmentFailed(string) {}

// Service runs the checkout workflow: persist, render invoice, email customer.
type Service struct {
	orders    iorderrepo.IOrderRepository
	invoices  iinvoicerepo.IInvoiceRepository
	events    ieventrepo.IEventRepository
	renderer  invoice.Renderer
	mailer    email.Sender
	converter *currency.Converter
	metrics   metrics
	tracer    trace.Tracer
	validate  *validator.Validate

	business string
	from     string
}

// option is a function that configures the Service.
type option func(*Service)

// MustNewService creates a new Service and panics when a dependency is missing.
func MustNewService(opts ...option) *Service {
	s := &Service{
		metrics:  noopMetrics{},
		tracer:   otel.Tracer("storefront"),
		business: "StyleAura",
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orders == nil || s.invoices == nil || s.events == nil ||
		s.renderer == nil || s.mailer == nil || s.converter == nil {
		panic("fulfillment: missing dependency")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *Service) {
		s.orders = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithInvoiceRepository(repo iinvoicerepo.IInvoiceRepository) option {
	return func(s *Service) {
		s.invoices = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventRepository(repo ieventrepo.IEventRepository) option {
	return func(s *Service) {
		s.events = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithRenderer(r invoice.Renderer) option {
	return func(s *Service) {
		s.renderer = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m email.Sender) option {
	return func(s *Service) {
		s.mailer = m
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithConverter(c *currency.Converter) option {
	return func(s *Service) {
		s.converter = c
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m metrics) option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSender sets the business name and the From address of customer mail.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSender(business, from string) option {
	return func(s *Service) {
		if business != "" {
			s.business = business
		}
		s.from = from
	}
}

// WithStrictValidation rejects incomplete orders before anything is stored.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStrictValidation(enabled bool) option {
	return func(s *Service) {
		if enabled {
			s.validate = validator.New(validator.WithRequiredStructEnabled())
		}
	}
}

// PlaceOrder persists a new order, renders its invoice and emails the customer.
// On ErrFulfillment the returned order is the persisted one.
func (s *Service) PlaceOrder(ctx context.Context, o order.Order) (order.Order, error) {
	ctx, span := s.tracer.Start(ctx, "fulfillment.PlaceOrder")
	defer span.End()

	if s.validate != nil {
		if err := s.validate.StructCtx(ctx, o); err != nil {
			return order.Order{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
		}
	}

	if itemsTotal := o.ItemsTotal(); math.Abs(itemsTotal-o.Total) > totalTolerance {
		slog.WarnContext(ctx, "Order total differs from line items",
			"total", o.Total,
			"items_total", itemsTotal,
		)
	}

	o.Status = order.ShippingPending
	o.PaymentStatus = order.PaymentPending

	var created order.Order
	err := s.step(ctx, StepPersist, func(ctx context.Context) error {
		var err error
		created, err = s.orders.Create(ctx, o)

		return err
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("%w: %s: %w", ErrPlaceOrder, StepPersist, err)
	}

	span.SetAttributes(attribute.String("order.id", created.ID))
	s.metrics.OrderPlaced()
	s.publish(ctx, event.NewOrderCreated(&created))

	if err := s.deliver(ctx, created); err != nil {
		return created, err
	}

	slog.InfoContext(ctx, "Order placed", "order_id", created.ID, "items", len(created.Items))

	return created, nil
}

// Resend re-renders the invoice of an existing order and emails it again.
func (s *Service) Resend(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "fulfillment.Resend", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.deliver(ctx, o)
}

// Invoice returns the stored invoice, rendering and storing it when missing.
func (s *Service) Invoice(ctx context.Context, id string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "fulfillment.Invoice", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf, err := s.invoices.Load(ctx, o.ID)
	if err == nil {
		return pdf, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := s.step(ctx, StepRender, func(ctx context.Context) error {
		pdf, err = s.render(ctx, invoice.Build(o, s.converter, s.business), o.ID)

		return err
	}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFulfillment, StepRender, err)
	}

	return pdf, nil
}

// deliver runs the render and notify steps for a persisted order.
func (s *Service) deliver(ctx context.Context, o order.Order) error {
	doc := invoice.Build(o, s.converter, s.business)

	var pdf []byte
	if err := s.step(ctx, StepRender, func(ctx context.Context) error {
		var err error
		pdf, err = s.render(ctx, doc, o.ID)

		return err
	}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFulfillment, StepRender, err)
	}

	if err := s.step(ctx, StepNotify, func(ctx context.Context) error {
		return s.notify(ctx, doc, o, pdf)
	}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFulfillment, StepNotify, err)
	}

	return nil
}

func (s *Service) render(ctx context.Context, doc invoice.Document, id string) ([]byte, error) {
	pdf, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, id, pdf); err != nil {
		return nil, err
	}

	return pdf, nil
}

func (s *Service) notify(ctx context.Context, doc invoice.Document, o order.Order, pdf []byte) error {
	body, err := invoice.EmailHTML(doc)
	if err != nil {
		return err
	}

	return s.mailer.SendMail(ctx, email.Mail{
		FromName:    s.business,
		From:        s.from,
		To:          o.Email,
		ToName:      o.Name,
		Subject:     "Order Confirmation - " + s.business,
		HTML:        body,
		Attachments: []email.Attachment{{Filename: invoiceFilename, Content: pdf}},
	})
}

// step runs fn inside a span and records a failure metric.
func (s *Service) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "fulfillment."+name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.FulfillmentFailed(name)
		slog.ErrorContext(ctx, "Fulfillment step failed", "step", name, "error", err)

		return err
	}

	return nil
}

func (s *Service) publish(ctx context.Context, ev event.OrderEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish order event",
			"order_id", ev.OrderID,
			"event_type", ev.Type,
			"error", err,
		)
	}
}
