package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a buyer record. Phone doubles as the shop's lookup key at
// the counter and must be a unique 10-digit number.
type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Phone     string       `gorm:"type:text;not null;uniqueIndex:ux_customers_phone" json:"phone"`
	Address   *string      `gorm:"type:text" json:"address,omitempty"`
	PhotoPath *string      `gorm:"type:text" json:"photo_path,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
