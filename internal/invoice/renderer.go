// Package invoice renders an order into a PDF invoice and manages the
// temporary artifact that carries it to the mailer.
package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/nyashahama/invoice-mailer/internal/order"
)

// Renderer produces an invoice artifact for an order. The HTTP layer depends
// on this interface; tests inject a stub that never touches fpdf or the disk.
type Renderer interface {
	Render(o order.Order) (*Artifact, error)
}

// TableRow is one body row of the order summary table: the product name, the
// quantity as displayed ("x2"), and the line price formatted as currency.
type TableRow struct {
	Name     string
	Quantity string
	Price    string
}

// SummaryRows returns one TableRow per cart item, in cart order. The price
// column is the item's own Price × Quantity — never a share of TotalAmount.
// An empty cart returns no rows; the rendered table then consists of the
// header row alone.
func SummaryRows(o order.Order) []TableRow {
	rows := make([]TableRow, len(o.CartItems))
	for i, item := range o.CartItems {
		rows[i] = TableRow{
			Name:     item.Name,
			Quantity: fmt.Sprintf("x%d", item.Quantity),
			Price:    order.FormatUSD(item.LineTotal()),
		}
	}
	return rows
}

// PDFRenderer writes invoices into a spool directory with collision-free
// names. Safe for concurrent use — each call owns its own fpdf document and
// its own file.
type PDFRenderer struct {
	dir string
}

// NewPDFRenderer returns a renderer spooling into dir. An empty dir falls
// back to the system temp directory.
func NewPDFRenderer(dir string) *PDFRenderer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &PDFRenderer{dir: dir}
}

// Table column widths in mm. A4 portrait with default margins leaves 190mm.
const (
	colNameWidth  = 90
	colQtyWidth   = 40
	colPriceWidth = 60
)

// Render lays out the invoice and writes it to the spool directory. The file
// is fully written and closed before the Artifact is returned. On any
// failure, a partially written file is removed before the error surfaces —
// callers only ever own artifacts that exist.
func (r *PDFRenderer) Render(o order.Order) (*Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 10, "Order Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Customer block, verbatim from the request.
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(85, 85, 85)
	for _, line := range []string{
		"Name: " + o.CustomerDetails.Name,
		"Address: " + o.CustomerDetails.Address,
		"Phone: " + o.CustomerDetails.Phone,
		"Email: " + o.CustomerDetails.Email,
	} {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Summary heading.
	pdf.SetFont("Helvetica", "U", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 7, "Order Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Table header, then one row per item.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(colNameWidth, 6, "Product Name", "", 0, "L", false, 0, "")
	pdf.CellFormat(colQtyWidth, 6, "Quantity", "", 0, "R", false, 0, "")
	pdf.CellFormat(colPriceWidth, 6, "Price", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range SummaryRows(o) {
		pdf.CellFormat(colNameWidth, 6, row.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQtyWidth, 6, row.Quantity, "", 0, "R", false, 0, "")
		pdf.CellFormat(colPriceWidth, 6, row.Price, "", 1, "R", false, 0, "")
	}

	// Total, as claimed by the request.
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 8, "Total Amount: "+order.FormatUSD(o.TotalAmount), "", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("invoice: layout: %w", err)
	}

	id := uuid.New()
	filename := fmt.Sprintf("invoice_%d_%s.pdf", time.Now().Unix(), id)
	path := filepath.Join(r.dir, filename)

	if err := pdf.OutputFileAndClose(path); err != nil {
		// A failed write may still have created the file.
		_ = os.Remove(path)
		return nil, fmt.Errorf("invoice: write %s: %w", path, err)
	}

	return &Artifact{ID: id, Path: path, Filename: filename}, nil
}
