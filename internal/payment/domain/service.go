package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
)

// ApplyPaymentRequest carries one incoming payment against an invoice.
// Amount is the raw decimal string from the caller; the service itself
// validates it even when the edge already has.
type ApplyPaymentRequest struct {
	InvoiceID string
	Amount    string
}

// ApplyPaymentResult reports the updated invoice and whether it is now
// fully settled, so the caller can branch on the outcome.
type ApplyPaymentResult struct {
	Invoice invoicedomain.Invoice `json:"invoice"`
	// Applied is the portion of the requested amount actually applied
	// after clamping to the outstanding balance.
	Applied int64 `json:"applied"`
	Settled bool  `json:"settled"`
}

// Service applies payments to invoices. This is the only path by which
// amount_paid may change; there is no refund or decrease path.
type Service interface {
	Apply(ctx context.Context, req ApplyPaymentRequest) (ApplyPaymentResult, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvalidAmount    = errors.New("invalid_payment_amount")
	ErrZeroAmount       = errors.New("zero_payment_amount")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
)
