package ordersvc

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"github.com/styleaura/storefront/internal/dal/interfaces/ieventrepo"
	"github.com/styleaura/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/styleaura/storefront/internal/service/models/analytics"
	"github.com/styleaura/storefront/internal/service/models/currency"
	"github.com/styleaura/storefront/internal/service/models/event"
	"github.com/styleaura/storefront/internal/service/models/order"
	"github.com/styleaura/storefront/internal/service/models/payment"
)

const (
	topProductsLimit = 5
	defaultQRBaseURL = "https://api.qrserver.com/v1/create-qr-code/?size=220x220&data="
)

// OrderService is a service for the admin side of orders.
type OrderService struct {
	orders    iorderrepo.IOrderRepository
	events    ieventrepo.IEventRepository
	converter *currency.Converter

	upiID     string
	payeeName string
	qrBaseURL string
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		payeeName: "StyleAura",
		qrBaseURL: defaultQRBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orders == nil || s.events == nil || s.converter == nil {
		panic("ordersvc: missing dependency")
	}

	return s
}

// WithOrderRepository sets the order store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orders = repo
	}
}

// WithEventRepository sets the order event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventRepository(repo ieventrepo.IEventRepository) option {
	return func(s *OrderService) {
		s.events = repo
	}
}

// WithConverter sets the display currency converter.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithConverter(c *currency.Converter) option {
	return func(s *OrderService) {
		s.converter = c
	}
}

// WithUPI sets the payee of generated payment links.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUPI(upiID, payeeName, qrBaseURL string) option {
	return func(s *OrderService) {
		s.upiID = upiID
		if payeeName != "" {
			s.payeeName = payeeName
		}
		if qrBaseURL != "" {
			s.qrBaseURL = qrBaseURL
		}
	}
}

// List returns the orders matching filter, newest first.
func (s *OrderService) List(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	return s.orders.List(ctx, filter)
}

// Get returns a single order with its items.
func (s *OrderService) Get(ctx context.Context, id string) (order.Order, error) {
	return s.orders.Get(ctx, id)
}

// UpdateStatus applies a partial status update and publishes an event for it.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, upd order.StatusUpdate) error {
	if upd.Status != nil {
		if _, err := order.ParseShippingStatus(upd.Status.String()); err != nil {
			return err
		}
	}
	if upd.PaymentStatus != nil {
		if _, err := order.ParsePaymentStatus(upd.PaymentStatus.String()); err != nil {
			return err
		}
	}

	if err := s.orders.UpdateStatus(ctx, id, upd); err != nil {
		return err
	}
	if upd.Empty() {
		return nil
	}

	ev := event.NewStatusChanged(id, upd)
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish status change", "order_id", id, "error", err)
	}

	return nil
}

// Analytics aggregates all stored orders.
func (s *OrderService) Analytics(ctx context.Context) (analytics.Analytics, error) {
	orders, err := s.orders.List(ctx, order.QueryOrdersModel{})
	if err != nil {
		return analytics.Analytics{}, err
	}

	res := analytics.Analytics{
		TotalOrders: len(orders),
		StatusCount: make(map[string]int),
		Currency:    s.converter.Code,
		Rate:        s.converter.Rate(),
	}
	quantities := make(map[string]int)
	for _, o := range orders {
		res.TotalSales += o.Total
		res.StatusCount[o.Status.String()]++
		for _, item := range o.Items {
			quantities[item.Name] += item.Quantity
		}
	}
	res.DisplaySales = s.converter.Display(res.TotalSales)
	res.TopProducts = topProducts(quantities, topProductsLimit)

	return res, nil
}

func topProducts(quantities map[string]int, limit int) []analytics.ProductSales {
	products := make([]analytics.ProductSales, 0, len(quantities))
	for name, qty := range quantities {
		products = append(products, analytics.ProductSales{Name: name, Quantity: qty})
	}
	slices.SortFunc(products, func(a, b analytics.ProductSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})
	if len(products) > limit {
		products = products[:limit]
	}

	return products
}

// PaymentLink builds the UPI deep link and QR code URL for an order.
func (s *OrderService) PaymentLink(ctx context.Context, id string) (payment.Link, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return payment.Link{}, err
	}

	amount := s.converter.Display(o.Total)
	uri := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&cu=%s",
		url.QueryEscape(s.upiID),
		url.QueryEscape(s.payeeName),
		amount,
		url.QueryEscape(s.converter.Code),
	)

	return payment.Link{
		OrderID:  o.ID,
		Amount:   amount,
		Currency: s.converter.Code,
		UPIID:    s.upiID,
		UPIURI:   uri,
		QRURL:    s.qrBaseURL + url.QueryEscape(uri),
	}, nil
}
