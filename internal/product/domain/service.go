package domain

import (
	"context"
	"errors"
)

// CreateProductRequest carries the writable fields for a new stock unit.
// Prices are decimal strings, parsed and validated by the service.
type CreateProductRequest struct {
	Brand         string `json:"brand"`
	ModelName     string `json:"model_name"`
	IMEI          string `json:"imei"`
	PurchasePrice string `json:"purchase_price"`
	SellingPrice  string `json:"selling_price"`
}

// ListProductRequest filters the stock list.
type ListProductRequest struct {
	// Available narrows to sellable or sold units when set.
	Available *bool
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	List(ctx context.Context, req ListProductRequest) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	// ToggleAvailability flips the sale state of one unit with no
	// invoice-side effects. Used for returns and restocks.
	ToggleAvailability(ctx context.Context, id string) (Product, error)
	// Delete refuses to remove a unit that any invoice references.
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID         = errors.New("invalid_product_id")
	ErrInvalidBrand      = errors.New("invalid_brand")
	ErrInvalidModelName  = errors.New("invalid_model_name")
	ErrInvalidIMEI       = errors.New("invalid_imei")
	ErrDuplicateIMEI     = errors.New("duplicate_imei")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrProductReferenced = errors.New("product_referenced_by_invoice")
)
