package invoice_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nyashahama/invoice-mailer/internal/invoice"
	"github.com/nyashahama/invoice-mailer/internal/order"
)

func sampleOrder() order.Order {
	return order.Order{
		CartItems: []order.CartItem{
			{Name: "Tea", Quantity: 2, Price: 1.50},
			{Name: "Coffee", Quantity: 1, Price: 4.25},
		},
		TotalAmount: 7.25,
		CustomerDetails: order.CustomerDetails{
			Name:    "Jordan Kim",
			Address: "1 Main St",
			Phone:   "555-0100",
			Email:   "jordan@example.com",
		},
	}
}

// ─── SummaryRows ──────────────────────────────────────────────────────────────

func TestSummaryRows_OneRowPerItem(t *testing.T) {
	o := sampleOrder()
	rows := invoice.SummaryRows(o)

	if len(rows) != len(o.CartItems) {
		t.Fatalf("got %d rows, want %d", len(rows), len(o.CartItems))
	}
	for i, item := range o.CartItems {
		if rows[i].Name != item.Name {
			t.Errorf("row %d name = %q, want %q", i, rows[i].Name, item.Name)
		}
	}
}

func TestSummaryRows_LinePriceFromItemNotTotal(t *testing.T) {
	// Scenario: {Tea, 2, 1.50} with a claimed total of 3.00 — the line price
	// must be $3.00 computed from price × quantity.
	o := order.Order{
		CartItems:   []order.CartItem{{Name: "Tea", Quantity: 2, Price: 1.50}},
		TotalAmount: 3.00,
	}

	rows := invoice.SummaryRows(o)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Price != "$3.00" {
		t.Errorf("line price = %q, want %q", rows[0].Price, "$3.00")
	}
	if rows[0].Quantity != "x2" {
		t.Errorf("quantity = %q, want %q", rows[0].Quantity, "x2")
	}

	// Same cart, absurd total: line price must not move.
	o.TotalAmount = 999
	rows = invoice.SummaryRows(o)
	if rows[0].Price != "$3.00" {
		t.Errorf("line price = %q after total change, want %q", rows[0].Price, "$3.00")
	}
}

func TestSummaryRows_EmptyCart(t *testing.T) {
	rows := invoice.SummaryRows(order.Order{})
	if len(rows) != 0 {
		t.Fatalf("got %d rows for empty cart, want 0", len(rows))
	}
}

// ─── Render ──────────────────────────────────────────────────────────────────

func TestRender_ProducesPDFArtifact(t *testing.T) {
	dir := t.TempDir()
	r := invoice.NewPDFRenderer(dir)

	artifact, err := r.Render(sampleOrder())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if filepath.Dir(artifact.Path) != dir {
		t.Errorf("artifact path %q not in spool dir %q", artifact.Path, dir)
	}
	if !strings.HasPrefix(artifact.Filename, "invoice_") || !strings.HasSuffix(artifact.Filename, ".pdf") {
		t.Errorf("unexpected filename %q", artifact.Filename)
	}

	b, err := artifact.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("artifact is empty")
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Errorf("artifact does not start with a PDF header: %q", b[:min(8, len(b))])
	}
}

func TestRender_EmptyCartStillRenders(t *testing.T) {
	r := invoice.NewPDFRenderer(t.TempDir())

	o := sampleOrder()
	o.CartItems = nil
	o.TotalAmount = 0

	artifact, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	b, err := artifact.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty-cart artifact is empty")
	}
}

func TestArtifact_RemoveIsIdempotent(t *testing.T) {
	r := invoice.NewPDFRenderer(t.TempDir())

	artifact, err := r.Render(sampleOrder())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if err := artifact.Remove(); err != nil {
		t.Fatalf("first Remove() error: %v", err)
	}
	if _, err := os.Stat(artifact.Path); !os.IsNotExist(err) {
		t.Fatalf("artifact still exists after Remove: %v", err)
	}
	if err := artifact.Remove(); err != nil {
		t.Fatalf("second Remove() error: %v, want nil", err)
	}
}

func TestRender_ConcurrentInvocationsGetDistinctArtifacts(t *testing.T) {
	// Two orders in the same time quantum must never collide on artifact
	// identity — the uuid in the filename guarantees it.
	dir := t.TempDir()
	r := invoice.NewPDFRenderer(dir)

	const n = 8
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			artifact, err := r.Render(sampleOrder())
			if err != nil {
				t.Errorf("Render() error: %v", err)
				return
			}
			paths[i] = artifact.Path
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, p := range paths {
		if p == "" {
			continue // render failed; already reported
		}
		if seen[p] {
			t.Fatalf("duplicate artifact path %q", p)
		}
		seen[p] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read spool dir: %v", err)
	}
	if len(entries) != n {
		t.Errorf("spool dir has %d files, want %d", len(entries), n)
	}
}
