package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
)

// CreateCustomerRequest carries the writable fields for a new customer.
type CreateCustomerRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Address   *string `json:"address,omitempty"`
	PhotoPath *string `json:"photo_path,omitempty"`
}

// ListCustomerRequest filters the customer list. Query matches name or
// phone substrings.
type ListCustomerRequest struct {
	Query string
}

// CustomerDetail is a customer with their purchase history and the sum
// of everything still owed across it.
type CustomerDetail struct {
	Customer
	Invoices       []invoicedomain.Invoice `json:"invoices"`
	PendingBalance int64                   `json:"pending_balance"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) ([]Customer, error)
	GetByID(ctx context.Context, id string) (CustomerDetail, error)
	// Delete removes the customer and cascades to their invoices.
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID        = errors.New("invalid_customer_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidPhone     = errors.New("invalid_phone")
	ErrDuplicatePhone   = errors.New("duplicate_phone")
	ErrCustomerNotFound = errors.New("customer_not_found")
)
