// Package email composes and delivers the order confirmation message, with
// the rendered invoice attached, via the Resend API.
package email

import (
	"context"

	"github.com/nyashahama/invoice-mailer/internal/order"
)

// OrderConfirmationParams holds everything needed to send one confirmation.
type OrderConfirmationParams struct {
	// Order is the validated request payload. The recipient is
	// Order.CustomerDetails.Email; the body summarises the cart verbatim.
	Order order.Order

	// AttachmentFilename names the invoice in the recipient's mail client.
	AttachmentFilename string

	// AttachmentBytes is the rendered PDF.
	AttachmentBytes []byte
}

// Sender is the outbound mail capability the HTTP handler depends on.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	// SendOrderConfirmation delivers the confirmation email to the customer
	// with the configured admin addresses blind-copied. Any provider failure
	// is returned as a single wrapped error — no retry, no subtyping.
	SendOrderConfirmation(ctx context.Context, p OrderConfirmationParams) error
}
