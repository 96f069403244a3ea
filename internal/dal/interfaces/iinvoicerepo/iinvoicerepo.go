package iinvoicerepo

//go:generate mockgen -source=./iinvoicerepo.go -destination=./mocks/iinvoicerepo.mock.go -package=invoicerepomocks

import "context"

// IInvoiceRepository persists rendered invoices keyed by order id.
type IInvoiceRepository interface {
	Save(ctx context.Context, orderID string, pdf []byte) error
	Load(ctx context.Context, orderID string) ([]byte, error)
}
