package email

import (
	"strings"
	"testing"

	"github.com/nyashahama/invoice-mailer/internal/order"
)

// White-box tests: buildRequest is the seam where recipient, bcc, subject,
// and attachment are fixed, just before the provider SDK takes over.

func confirmationParams() OrderConfirmationParams {
	return OrderConfirmationParams{
		Order: order.Order{
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
		},
		AttachmentFilename: "invoice_1_abc.pdf",
		AttachmentBytes:    []byte("%PDF-1.4 fake"),
	}
}

func newTestClient(adminBCC []string) *resendClient {
	return NewResendClient("re_test", "orders@example.com", "Your Company", adminBCC).(*resendClient)
}

func TestBuildRequest_RecipientAndBcc(t *testing.T) {
	admins := []string{"admin1@example.com", "admin2@example.com"}
	c := newTestClient(admins)

	req := c.buildRequest(confirmationParams())

	if len(req.To) != 1 || req.To[0] != "jordan@example.com" {
		t.Errorf("To = %v, want the customer email only", req.To)
	}
	if len(req.Bcc) != len(admins) {
		t.Fatalf("Bcc = %v, want all %d admin addresses", req.Bcc, len(admins))
	}
	for i, addr := range admins {
		if req.Bcc[i] != addr {
			t.Errorf("Bcc[%d] = %q, want %q", i, req.Bcc[i], addr)
		}
	}
}

func TestBuildRequest_BccUnaffectedByOrderShape(t *testing.T) {
	admins := []string{"admin1@example.com", "admin2@example.com"}
	c := newTestClient(admins)

	// Empty cart and a malformed customer address: the admin copies still go out.
	p := confirmationParams()
	p.Order.CartItems = nil
	p.Order.CustomerDetails.Email = "not-an-address"

	req := c.buildRequest(p)
	if len(req.Bcc) != len(admins) {
		t.Errorf("Bcc = %v, want all admin addresses regardless of order shape", req.Bcc)
	}
}

func TestBuildRequest_AdminListCopiedAtConstruction(t *testing.T) {
	admins := []string{"admin1@example.com"}
	c := newTestClient(admins)

	admins[0] = "attacker@example.com"

	req := c.buildRequest(confirmationParams())
	if req.Bcc[0] != "admin1@example.com" {
		t.Errorf("Bcc[0] = %q, caller mutation leaked into the client", req.Bcc[0])
	}
}

func TestBuildRequest_FixedSubjectAndPDFAttachment(t *testing.T) {
	c := newTestClient([]string{"admin@example.com"})
	p := confirmationParams()

	req := c.buildRequest(p)

	if req.Subject != Subject {
		t.Errorf("Subject = %q, want %q", req.Subject, Subject)
	}
	if len(req.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(req.Attachments))
	}
	att := req.Attachments[0]
	if att.Filename != p.AttachmentFilename {
		t.Errorf("attachment filename = %q, want %q", att.Filename, p.AttachmentFilename)
	}
	if att.ContentType != "application/pdf" {
		t.Errorf("attachment content type = %q, want application/pdf", att.ContentType)
	}
	if len(att.Content) == 0 {
		t.Error("attachment content is empty")
	}
}

func TestBuildRequest_FromIncludesSenderName(t *testing.T) {
	c := newTestClient([]string{"admin@example.com"})
	req := c.buildRequest(confirmationParams())

	if req.From != "Your Company <orders@example.com>" {
		t.Errorf("From = %q", req.From)
	}
}

// ─── BodyText ────────────────────────────────────────────────────────────────

func TestBodyText_SummarisesOrder(t *testing.T) {
	p := confirmationParams()
	body := BodyText(p.Order)

	for _, want := range []string{
		"Dear Jordan Kim,",
		"Name: Jordan Kim",
		"Address: 1 Main St",
		"Phone: 555-0100",
		"Email: jordan@example.com",
		"Tea x2 $3.00",
		"Coffee x1 $4.25",
		"Total Amount: $7.25",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestBodyText_EmptyCartKeepsTotal(t *testing.T) {
	p := confirmationParams()
	p.Order.CartItems = nil
	p.Order.TotalAmount = 0

	body := BodyText(p.Order)

	if strings.Contains(body, "Your order:") {
		t.Error("empty cart should produce no item section")
	}
	if !strings.Contains(body, "Total Amount: $0.00") {
		t.Errorf("body missing zero total:\n%s", body)
	}
}
