package invoice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer draws invoices with the core PDF fonts. The core fonts use
// cp1252, so amounts are prefixed with the currency code instead of a symbol
// that may be missing from that code page.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(_ context.Context, doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Business+" Invoice", true)
	if !doc.Date.IsZero() {
		pdf.SetCreationDate(doc.Date)
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(doc.Business+" Invoice"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range []string{
		"Order ID: " + doc.OrderID,
		"Date: " + doc.DateString(),
		"Name: " + doc.CustomerName,
		"Email: " + doc.Email,
		"Phone: " + doc.Phone,
	} {
		pdf.CellFormat(0, 7, tr(row), "", 1, "L", false, 0, "")
	}
	pdf.MultiCell(0, 7, tr("Address: "+doc.Address), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(110, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for i, line := range doc.Lines {
		pdf.CellFormat(110, 7, tr(fmt.Sprintf("%d. %s", i+1, line.Label)), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, r.money(doc, line.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, r.money(doc, line.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(145, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, r.money(doc, doc.Total), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *PDFRenderer) money(doc Document, amount int64) string {
	return fmt.Sprintf("%s %d", doc.CurrencyCode, amount)
}
