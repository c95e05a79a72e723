package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product is one phone unit in stock, identified by its IMEI.
// Availability is the sale state: true while the unit is sellable,
// false once an invoice has been raised against it.
type Product struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Brand         string       `gorm:"type:text;not null" json:"brand"`
	ModelName     string       `gorm:"type:text;not null" json:"model_name"`
	IMEI          string       `gorm:"column:imei;type:text;not null;uniqueIndex:ux_products_imei" json:"imei"`
	PurchasePrice int64        `gorm:"not null" json:"purchase_price"`
	SellingPrice  int64        `gorm:"not null" json:"selling_price"`
	IsAvailable   bool         `gorm:"not null;default:true" json:"is_available"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
