package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
)

// PaymentMode is how the buyer settles an invoice.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeBajaj  PaymentMode = "BAJAJ_FINANCE"
	PaymentModeOnline PaymentMode = "ONLINE"
)

// Valid reports whether the mode is one of the accepted values.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBajaj, PaymentModeOnline:
		return true
	}
	return false
}

// Invoice status values derived from the outstanding balance.
const (
	StatusDue  = "DUE"
	StatusPaid = "PAID"
)

// Invoice records one sale: which customer bought which unit, for how
// much, and how much of it has been received. BalanceAmount is derived;
// every write path calls RecomputeBalance before persisting so the
// stored value never drifts from total minus paid.
type Invoice struct {
	ID            snowflake.ID           `gorm:"primaryKey" json:"id"`
	CustomerID    snowflake.ID           `gorm:"not null;index" json:"customer_id"`
	ProductID     snowflake.ID           `gorm:"not null;index" json:"product_id"`
	Product       *productdomain.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	TotalAmount   int64                  `gorm:"not null" json:"total_amount"`
	AmountPaid    int64                  `gorm:"not null;default:0" json:"amount_paid"`
	BalanceAmount int64                  `gorm:"not null;default:0" json:"balance_amount"`
	PaymentMode   PaymentMode            `gorm:"type:text;not null;default:'CASH'" json:"payment_mode"`
	TransactionID *string                `gorm:"type:text" json:"transaction_id,omitempty"`
	DueDate       *time.Time             `gorm:"index" json:"due_date,omitempty"`
	SaleDate      time.Time              `gorm:"not null;index" json:"sale_date"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// RecomputeBalance derives the outstanding balance from the amount
// fields. Idempotent: recomputing from the same inputs yields the same
// stored value.
func (i *Invoice) RecomputeBalance() {
	i.BalanceAmount = i.TotalAmount - i.AmountPaid
}

// Status reports DUE while any balance is outstanding, PAID otherwise.
func (i *Invoice) Status() string {
	if i.BalanceAmount > 0 {
		return StatusDue
	}
	return StatusPaid
}

// Profit is the margin on the sale: deal price minus what the unit cost
// the shop. Zero when the product reference is missing. Negative margins
// are valid and reported as-is.
func (i *Invoice) Profit() int64 {
	if i.Product == nil {
		return 0
	}
	return i.TotalAmount - i.Product.PurchasePrice
}
