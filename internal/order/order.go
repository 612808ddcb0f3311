// Package order defines the order payload accepted by the HTTP API and the
// arithmetic shared by the invoice renderer and the confirmation email.
// It is deliberately dependency-free so both can import it.
package order

import (
	"fmt"
	"strings"
)

// CartItem is one purchased line in the cart. Items are not required to be
// unique by name — the same product can appear more than once.
type CartItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"` // unit price in dollars
}

// LineTotal is Price × Quantity, computed from the item itself.
//
// This is the single source of truth for line prices everywhere an order is
// displayed. The request's TotalAmount is never used to derive a line price —
// a payload whose total disagrees with its items still renders each line
// correctly.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// CustomerDetails is the contact block supplied at checkout. Values are
// carried verbatim into the invoice and the email body — no normalisation.
type CustomerDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"` // delivery target for the confirmation email
}

// Order is the decoded request body for POST /api/orders/email.
type Order struct {
	CartItems       []CartItem      `json:"cartItems"`
	TotalAmount     float64         `json:"totalAmount"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
}

// ValidationError lists every rule an order violated. It is returned as a
// single error so the caller can report all problems at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Violations, "; ")
}

// Validate checks the rules an order must satisfy before the pipeline runs:
//
//   - customerDetails.email must be present (it is the delivery target)
//   - every item quantity must be at least 1
//   - every item price must be non-negative
//   - totalAmount must be non-negative
//
// An empty cart is valid — the invoice renders with a header-only table.
// All other string fields pass through as given, blank or not.
func (o Order) Validate() error {
	var violations []string

	if strings.TrimSpace(o.CustomerDetails.Email) == "" {
		violations = append(violations, "customerDetails.email is required")
	}
	if o.TotalAmount < 0 {
		violations = append(violations, "totalAmount must not be negative")
	}
	for i, item := range o.CartItems {
		if item.Quantity < 1 {
			violations = append(violations, fmt.Sprintf("cartItems[%d].quantity must be at least 1", i))
		}
		if item.Price < 0 {
			violations = append(violations, fmt.Sprintf("cartItems[%d].price must not be negative", i))
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// FormatUSD renders a money value with exactly two decimal places, e.g.
// "$3.00". No locale handling — the original storefront prices in dollars.
func FormatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
