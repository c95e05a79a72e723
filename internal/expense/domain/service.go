package domain

import (
	"context"
	"errors"
)

// CreateExpenseRequest carries the writable fields for a new expense.
// Amount is a decimal string; Date is an optional YYYY-MM-DD date that
// defaults to today.
type CreateExpenseRequest struct {
	Title       string  `json:"title"`
	Amount      string  `json:"amount"`
	ExpenseType string  `json:"expense_type"`
	Date        *string `json:"date,omitempty"`
}

// ListExpenseRequest filters expenses to one month when Month and Year
// are set.
type ListExpenseRequest struct {
	Month int
	Year  int
}

type Service interface {
	Create(ctx context.Context, req CreateExpenseRequest) (Expense, error)
	List(ctx context.Context, req ListExpenseRequest) ([]Expense, error)
}

var (
	ErrInvalidTitle  = errors.New("invalid_title")
	ErrInvalidAmount = errors.New("invalid_expense_amount")
	ErrInvalidType   = errors.New("invalid_expense_type")
	ErrInvalidDate   = errors.New("invalid_expense_date")
	ErrInvalidPeriod = errors.New("invalid_period")
)
