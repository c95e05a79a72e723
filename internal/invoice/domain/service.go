package domain

import (
	"context"
	"errors"
)

// CreateInvoiceRequest carries the writable fields for recording a sale.
// Amounts are decimal strings, parsed and validated by the service.
// DueDate is an optional YYYY-MM-DD date.
type CreateInvoiceRequest struct {
	CustomerID    string  `json:"customer_id"`
	ProductID     string  `json:"product_id"`
	TotalAmount   string  `json:"total_amount"`
	AmountPaid    string  `json:"amount_paid"`
	PaymentMode   string  `json:"payment_mode"`
	TransactionID *string `json:"transaction_id,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
}

// ListInvoiceRequest filters the invoice list.
type ListInvoiceRequest struct {
	CustomerID string
	// PendingOnly narrows to invoices with a positive outstanding balance.
	PendingOnly bool
}

type Service interface {
	// Create records a sale and marks the product sold in the same
	// transaction. Of two concurrent sales for one unit exactly one
	// can succeed.
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]Invoice, error)
}

var (
	ErrInvalidID          = errors.New("invalid_invoice_id")
	ErrInvalidCustomer    = errors.New("invalid_customer_id")
	ErrInvalidProduct     = errors.New("invalid_product_id")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrPaidExceedsTotal   = errors.New("amount_paid_exceeds_total")
	ErrInvalidPaymentMode = errors.New("invalid_payment_mode")
	ErrInvalidDueDate     = errors.New("invalid_due_date")
	ErrCustomerNotFound   = errors.New("customer_not_found")
	ErrProductNotFound    = errors.New("product_not_found")
	ErrProductUnavailable = errors.New("product_unavailable")
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
)
