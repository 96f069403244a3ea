package invoice

//go:generate mockgen -source=./invoice.go -destination=./mocks/invoice.mock.go -package=invoicemocks Renderer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/styleaura/storefront/internal/service/models/currency"
	"github.com/styleaura/storefront/internal/service/models/order"
)

// Renderer turns an invoice document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Line is one invoice row. Amounts are whole display-currency units.
type Line struct {
	Label     string
	UnitPrice int64
	Subtotal  int64
}

// Document is the currency-converted, render-ready view of an order.
type Document struct {
	Business     string
	OrderID      string
	Date         time.Time
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Lines        []Line
	Total        int64
	CurrencyCode string
	Symbol       string
}

// Build converts an order into a document with one line per line item.
// The grand total is the converted stored total, not the sum of the lines.
func Build(o order.Order, conv *currency.Converter, business string) Document {
	lines := make([]Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, Line{
			Label:     fmt.Sprintf("%s × %d", item.Name, item.Quantity),
			UnitPrice: conv.Display(item.Price),
			Subtotal:  conv.LineTotal(item.Price, item.Quantity),
		})
	}

	return Document{
		Business:     business,
		OrderID:      o.ID,
		Date:         o.CreatedAt,
		CustomerName: o.Name,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      joinAddress(o.Address, o.City, o.State, o.Zip),
		Lines:        lines,
		Total:        conv.Display(o.Total),
		CurrencyCode: conv.Code,
		Symbol:       conv.Symbol,
	}
}

func joinAddress(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ", ")
}

// Money formats an amount with the currency symbol.
func (d Document) Money(amount int64) string {
	return fmt.Sprintf("%s%d", d.Symbol, amount)
}

// DateString is the invoice date as printed.
func (d Document) DateString() string {
	if d.Date.IsZero() {
		return ""
	}

	return d.Date.Format("02 Jan 2006")
}
