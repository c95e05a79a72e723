package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ExpenseType classifies an operating expense.
type ExpenseType string

const (
	ExpenseTypeRent        ExpenseType = "Rent"
	ExpenseTypeElectricity ExpenseType = "Electricity"
	ExpenseTypeTeaFood     ExpenseType = "Tea/Food"
	ExpenseTypeOthers      ExpenseType = "Others"
)

// Valid reports whether the type is one of the accepted values.
func (t ExpenseType) Valid() bool {
	switch t {
	case ExpenseTypeRent, ExpenseTypeElectricity, ExpenseTypeTeaFood, ExpenseTypeOthers:
		return true
	}
	return false
}

// Expense is one operating cost entry. Immutable once recorded.
type Expense struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:text;not null" json:"title"`
	Amount      int64        `gorm:"not null" json:"amount"`
	ExpenseType ExpenseType  `gorm:"type:text;not null" json:"expense_type"`
	Date        time.Time    `gorm:"not null;index" json:"date"`
}

// TableName sets the database table name.
func (Expense) TableName() string { return "expenses" }
