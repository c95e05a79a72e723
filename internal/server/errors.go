package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/customer/domain"
	expensedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/expense/domain"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	paymentdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/payment/domain"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
	reportdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/report/domain"
	"go.uber.org/zap"
)

var (
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrNotFound           = errors.New("not_found")
	ErrTooManyRequests    = errors.New("too_many_requests")
)

// apiError is the envelope every failed request returns.
type apiError struct {
	status  int
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

func newValidationError(field, code, message string) error {
	return &apiError{status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

func invalidRequestError() error {
	return newValidationError("", "invalid_request", "request body could not be parsed")
}

// AbortWithError maps a domain error to its HTTP representation.
// Validation problems are 400, missing entities 404, referential
// conflicts 409; anything unrecognized is a 500.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.status, gin.H{"error": api})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case isValidationError(err):
		status = http.StatusBadRequest
	case isNotFoundError(err):
		status = http.StatusNotFound
	case isConflictError(err):
		status = http.StatusConflict
	case errors.Is(err, ErrTooManyRequests):
		status = http.StatusTooManyRequests
	case errors.Is(err, ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": "internal_error"}})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": err.Error()}})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		customerdomain.ErrInvalidID,
		customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidPhone,
		customerdomain.ErrDuplicatePhone,
		productdomain.ErrInvalidID,
		productdomain.ErrInvalidBrand,
		productdomain.ErrInvalidModelName,
		productdomain.ErrInvalidIMEI,
		productdomain.ErrDuplicateIMEI,
		productdomain.ErrInvalidPrice,
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidCustomer,
		invoicedomain.ErrInvalidProduct,
		invoicedomain.ErrInvalidAmount,
		invoicedomain.ErrPaidExceedsTotal,
		invoicedomain.ErrInvalidPaymentMode,
		invoicedomain.ErrInvalidDueDate,
		paymentdomain.ErrInvalidInvoiceID,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrZeroAmount,
		expensedomain.ErrInvalidTitle,
		expensedomain.ErrInvalidAmount,
		expensedomain.ErrInvalidType,
		expensedomain.ErrInvalidDate,
		expensedomain.ErrInvalidPeriod,
		reportdomain.ErrInvalidPeriod,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound,
		customerdomain.ErrCustomerNotFound,
		productdomain.ErrProductNotFound,
		invoicedomain.ErrCustomerNotFound,
		invoicedomain.ErrProductNotFound,
		invoicedomain.ErrInvoiceNotFound,
		paymentdomain.ErrInvoiceNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isConflictError(err error) bool {
	return errors.Is(err, productdomain.ErrProductReferenced) ||
		errors.Is(err, invoicedomain.ErrProductUnavailable)
}
