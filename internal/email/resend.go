package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/nyashahama/invoice-mailer/internal/order"
)

// Subject is fixed — it is never derived from order content.
const Subject = "Order Confirmation with Invoice"

// resendClient is the concrete Sender backed by the Resend SDK.
type resendClient struct {
	client   *resend.Client
	fromAddr string   // e.g. "orders@example.com"
	fromName string   // e.g. "Your Company"
	adminBCC []string // blind-copied on every confirmation, in config order
}

// NewResendClient returns a Sender that delivers email via Resend. adminBCC
// is the list of internal observer addresses; the slice is copied so later
// mutation by the caller cannot change who gets blind-copied.
func NewResendClient(apiKey, fromAddr, fromName string, adminBCC []string) Sender {
	bcc := make([]string, len(adminBCC))
	copy(bcc, adminBCC)
	return &resendClient{
		client:   resend.NewClient(apiKey),
		fromAddr: fromAddr,
		fromName: fromName,
		adminBCC: bcc,
	}
}

// SendOrderConfirmation implements Sender.
func (c *resendClient) SendOrderConfirmation(ctx context.Context, p OrderConfirmationParams) error {
	if _, err := c.client.Emails.SendWithContext(ctx, c.buildRequest(p)); err != nil {
		return fmt.Errorf("email: send order confirmation: %w", err)
	}
	return nil
}

// buildRequest maps one confirmation onto the provider request: the customer
// is the sole To recipient, every configured admin address is blind-copied,
// and the invoice rides along as an application/pdf attachment.
func (c *resendClient) buildRequest(p OrderConfirmationParams) *resend.SendEmailRequest {
	from := c.fromAddr
	if c.fromName != "" {
		from = fmt.Sprintf("%s <%s>", c.fromName, c.fromAddr)
	}

	return &resend.SendEmailRequest{
		From:    from,
		To:      []string{p.Order.CustomerDetails.Email},
		Bcc:     c.adminBCC,
		Subject: Subject,
		Text:    BodyText(p.Order),
		Attachments: []*resend.Attachment{
			{
				Filename:    p.AttachmentFilename,
				Content:     p.AttachmentBytes,
				ContentType: "application/pdf",
			},
		},
	}
}

// BodyText composes the plain-text body: greeting, customer details verbatim,
// one summary line per cart item with its computed line price, and the total
// amount as given. An empty cart produces no item lines but keeps the total.
func BodyText(o order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", o.CustomerDetails.Name)
	b.WriteString("Thank you for your purchase! Please find the attached invoice for your order.\n\n")

	fmt.Fprintf(&b, "Name: %s\n", o.CustomerDetails.Name)
	fmt.Fprintf(&b, "Address: %s\n", o.CustomerDetails.Address)
	fmt.Fprintf(&b, "Phone: %s\n", o.CustomerDetails.Phone)
	fmt.Fprintf(&b, "Email: %s\n\n", o.CustomerDetails.Email)

	if len(o.CartItems) > 0 {
		b.WriteString("Your order:\n")
		for _, item := range o.CartItems {
			fmt.Fprintf(&b, "  %s x%d %s\n", item.Name, item.Quantity, order.FormatUSD(item.LineTotal()))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total Amount: %s\n\n", order.FormatUSD(o.TotalAmount))
	b.WriteString("Best regards,\nYour Company\n")

	return b.String()
}
