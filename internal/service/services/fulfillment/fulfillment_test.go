package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	eventrepomocks "github.com/styleaura/storefront/internal/dal/interfaces/ieventrepo/mocks"
	invoicerepomocks "github.com/styleaura/storefront/internal/dal/interfaces/iinvoicerepo/mocks"
	orderrepomocks "github.com/styleaura/storefront/internal/dal/interfaces/iorderrepo/mocks"
	"github.com/styleaura/storefront/internal/email"
	emailmocks "github.com/styleaura/storefront/internal/email/mocks"
	"github.com/styleaura/storefront/internal/invoice"
	invoicemocks "github.com/styleaura/storefront/internal/invoice/mocks"
	"github.com/styleaura/storefront/internal/service/models/currency"
	"github.com/styleaura/storefront/internal/service/models/event"
	"github.com/styleaura/storefront/internal/service/models/order"
	"go.uber.org/mock/gomock"
)

const orderID = "7b0d3a2e-52f7-4d5b-9a9f-0c8a4a3f0e11"

var pdf = []byte("%PDF-1.3 test")

type recordingMetrics struct {
	placed   int
	failures []string
}

func (m *recordingMetrics) OrderPlaced()                  { m.placed++ }
func (m *recordingMetrics) FulfillmentFailed(step string) { m.failures = append(m.failures, step) }

type deps struct {
	orders   *orderrepomocks.MockIOrderRepository
	invoices *invoicerepomocks.MockIInvoiceRepository
	events   *eventrepomocks.MockIEventRepository
	renderer *invoicemocks.MockRenderer
	mailer   *emailmocks.MockSender
	metrics  *recordingMetrics
}

func newService(t *testing.T, strict bool) (*Service, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	conv, err := currency.NewConverter("INR", "₹", 83.5)
	require.NoError(t, err)

	d := deps{
		orders:   orderrepomocks.NewMockIOrderRepository(ctrl),
		invoices: invoicerepomocks.NewMockIInvoiceRepository(ctrl),
		events:   eventrepomocks.NewMockIEventRepository(ctrl),
		renderer: invoicemocks.NewMockRenderer(ctrl),
		mailer:   emailmocks.NewMockSender(ctrl),
		metrics:  &recordingMetrics{},
	}

	svc := MustNewService(
		WithOrderRepository(d.orders),
		WithInvoiceRepository(d.invoices),
		WithEventRepository(d.events),
		WithRenderer(d.renderer),
		WithMailer(d.mailer),
		WithConverter(conv),
		WithMetrics(d.metrics),
		WithSender("StyleAura", "shop@example.com"),
		WithStrictValidation(strict),
	)

	return svc, d
}

func submission() order.Order {
	return order.Order{
		Name:          "Asha",
		Email:         "asha@example.com",
		Phone:         "555",
		Address:       "1 Main St",
		Items:         []order.LineItem{{Name: "Denim Shirt", Price: 20, Quantity: 2}},
		Total:         40,
		Status:        order.ShippingDelivered,
		PaymentStatus: order.PaymentPaid,
	}
}

func persisted(o order.Order) order.Order {
	o.ID = orderID

	return o
}

func TestService_PlaceOrder(t *testing.T) {
	svc, d := newService(t, false)

	d.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o order.Order) (order.Order, error) {
			assert.Equal(t, order.ShippingPending, o.Status)
			assert.Equal(t, order.PaymentPending, o.PaymentStatus)

			return persisted(o), nil
		})
	d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events ...event.OrderEvent) error {
			require.Len(t, events, 1)
			assert.Equal(t, event.TypeOrderCreated, events[0].Type)
			assert.Equal(t, orderID, events[0].OrderID)

			return nil
		})
	d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc invoice.Document) ([]byte, error) {
			assert.Equal(t, orderID, doc.OrderID)
			require.Len(t, doc.Lines, 1)
			assert.Equal(t, int64(3340), doc.Lines[0].Subtotal)
			assert.Equal(t, int64(3340), doc.Total)

			return pdf, nil
		})
	d.invoices.EXPECT().Save(gomock.Any(), orderID, pdf).Return(nil)
	d.mailer.EXPECT().SendMail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m email.Mail) error {
			assert.Equal(t, "asha@example.com", m.To)
			assert.Equal(t, "Order Confirmation - StyleAura", m.Subject)
			assert.Contains(t, m.HTML, "Denim Shirt × 2 - ₹3340")
			assert.Equal(t, []email.Attachment{{Filename: "invoice.pdf", Content: pdf}}, m.Attachments)

			return nil
		})

	got, err := svc.PlaceOrder(context.Background(), submission())
	require.NoError(t, err)
	assert.Equal(t, orderID, got.ID)
	assert.Equal(t, order.ShippingPending, got.Status)
	assert.Equal(t, 1, d.metrics.placed)
	assert.Empty(t, d.metrics.failures)
}

func TestService_PlaceOrderFailures(t *testing.T) {
	testCases := []struct {
		name       string
		mock       func(d deps)
		wantErr    error
		wantStep   string
		wantStored bool
	}{
		{
			name: "persist fails",
			mock: func(d deps) {
				d.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(order.Order{}, errors.New("connection refused"))
			},
			wantErr:  ErrPlaceOrder,
			wantStep: StepPersist,
		},
		{
			name: "render fails",
			mock: func(d deps) {
				d.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o order.Order) (order.Order, error) { return persisted(o), nil })
				d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
				d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("font missing"))
			},
			wantErr:    ErrFulfillment,
			wantStep:   StepRender,
			wantStored: true,
		},
		{
			name: "invoice storage fails",
			mock: func(d deps) {
				d.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o order.Order) (order.Order, error) { return persisted(o), nil })
				d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
				d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(pdf, nil)
				d.invoices.EXPECT().Save(gomock.Any(), orderID, pdf).Return(errors.New("read-only fs"))
			},
			wantErr:    ErrFulfillment,
			wantStep:   StepRender,
			wantStored: true,
		},
		{
			name: "notify fails",
			mock: func(d deps) {
				d.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o order.Order) (order.Order, error) { return persisted(o), nil })
				d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
				d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(pdf, nil)
				d.invoices.EXPECT().Save(gomock.Any(), orderID, pdf).Return(nil)
				d.mailer.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(email.ErrAllFailed)
			},
			wantErr:    ErrFulfillment,
			wantStep:   StepNotify,
			wantStored: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newService(t, false)
			tc.mock(d)

			got, err := svc.PlaceOrder(context.Background(), submission())
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantStep)
			assert.Equal(t, []string{tc.wantStep}, d.metrics.failures)
			if tc.wantStored {
				assert.Equal(t, orderID, got.ID, "persisted order is returned")
				assert.Equal(t, 1, d.metrics.placed)
			} else {
				assert.Empty(t, got.ID)
				assert.Zero(t, d.metrics.placed)
			}
		})
	}
}

func TestService_PlaceOrderStrictValidation(t *testing.T) {
	svc, _ := newService(t, true)

	o := submission()
	o.Email = "not-an-email"
	_, err := svc.PlaceOrder(context.Background(), o)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	o = submission()
	o.Items = nil
	_, err = svc.PlaceOrder(context.Background(), o)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestService_Resend(t *testing.T) {
	svc, d := newService(t, false)

	d.orders.EXPECT().Get(gomock.Any(), orderID).Return(persisted(submission()), nil)
	d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(pdf, nil)
	d.invoices.EXPECT().Save(gomock.Any(), orderID, pdf).Return(nil)
	d.mailer.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.Resend(context.Background(), orderID))

	d.orders.EXPECT().Get(gomock.Any(), "missing").Return(order.Order{}, order.ErrInvalidID)
	assert.ErrorIs(t, svc.Resend(context.Background(), "missing"), order.ErrInvalidID)
}

func TestService_Invoice(t *testing.T) {
	notExist := fmt.Errorf("failed to read invoice: %w", fs.ErrNotExist)

	testCases := []struct {
		name    string
		mock    func(d deps)
		want    []byte
		wantErr error
	}{
		{
			name: "stored invoice",
			mock: func(d deps) {
				d.orders.EXPECT().Get(gomock.Any(), orderID).Return(persisted(submission()), nil)
				d.invoices.EXPECT().Load(gomock.Any(), orderID).Return(pdf, nil)
			},
			want: pdf,
		},
		{
			name: "rendered when missing",
			mock: func(d deps) {
				d.orders.EXPECT().Get(gomock.Any(), orderID).Return(persisted(submission()), nil)
				d.invoices.EXPECT().Load(gomock.Any(), orderID).Return(nil, notExist)
				d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return([]byte("%PDF-new"), nil)
				d.invoices.EXPECT().Save(gomock.Any(), orderID, []byte("%PDF-new")).Return(nil)
			},
			want: []byte("%PDF-new"),
		},
		{
			name: "unknown order",
			mock: func(d deps) {
				d.orders.EXPECT().Get(gomock.Any(), orderID).Return(order.Order{}, order.ErrNotFound)
			},
			wantErr: order.ErrNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newService(t, false)
			tc.mock(d)

			got, err := svc.Invoice(context.Background(), orderID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
