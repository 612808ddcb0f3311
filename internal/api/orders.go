package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nyashahama/invoice-mailer/internal/email"
	"github.com/nyashahama/invoice-mailer/internal/order"
)

// ─── POST /api/orders/email ───────────────────────────────────────────────────

type sendOrderEmailResponse struct {
	Message string `json:"message"`
	// Invoice is the attachment filename, useful for support correlation.
	Invoice string `json:"invoice"`
}

// handleSendOrderEmail runs the whole pipeline for one order: validate the
// payload, render the PDF invoice, email it to the customer (admins
// blind-copied), and respond.
//
// Renderer failure and delivery failure are reported distinctly (500 vs 502)
// so the storefront can tell "we could not produce your invoice" from "your
// invoice exists but the mail provider is down". Both messages stay generic —
// provider detail is only logged.
//
// The artifact is removed on every exit path after a successful render: the
// deferred Remove runs whether the send succeeds, fails, or times out.
func (s *Server) handleSendOrderEmail(w http.ResponseWriter, r *http.Request) {
	var o order.Order
	if !decode(w, r, &o) {
		return
	}

	if err := o.Validate(); err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			respond(w, http.StatusBadRequest, map[string]any{
				"error":      "invalid order",
				"violations": verr.Violations,
			})
			return
		}
		respondErr(w, http.StatusBadRequest, "invalid order")
		return
	}

	// ── Render ────────────────────────────────────────────────────────────────
	artifact, err := s.renderer.Render(o)
	if err != nil {
		s.logger.Error("invoice render failed", "error", err, logField(r))
		respondErr(w, http.StatusInternalServerError, "failed to generate invoice")
		return
	}

	// From here the artifact exists on disk and this request owns it. The
	// deferred Remove is the only cleanup call — no per-branch unlinks.
	defer func() {
		if err := artifact.Remove(); err != nil {
			s.logger.Error("invoice cleanup failed",
				"path", artifact.Path,
				"error", err,
				logField(r),
			)
		}
	}()

	attachment, err := artifact.Bytes()
	if err != nil {
		s.logger.Error("invoice read-back failed",
			"path", artifact.Path,
			"error", err,
			logField(r),
		)
		respondErr(w, http.StatusInternalServerError, "failed to generate invoice")
		return
	}

	// ── Deliver ───────────────────────────────────────────────────────────────
	ctx := r.Context()
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	err = s.mailer.SendOrderConfirmation(ctx, email.OrderConfirmationParams{
		Order:              o,
		AttachmentFilename: artifact.Filename,
		AttachmentBytes:    attachment,
	})
	if err != nil {
		s.logger.Error("order confirmation send failed",
			"error", err,
			"to", o.CustomerDetails.Email,
			"invoice", artifact.Filename,
			logField(r),
		)
		respondErr(w, http.StatusBadGateway, "failed to send order confirmation email")
		return
	}

	s.logger.Info("order confirmation sent",
		"to", o.CustomerDetails.Email,
		"items", len(o.CartItems),
		"invoice", artifact.Filename,
		logField(r),
	)

	respond(w, http.StatusOK, sendOrderEmailResponse{
		Message: "order confirmation email sent",
		Invoice: artifact.Filename,
	})
}
