package domain

import (
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
)

// DashboardRequest selects the reporting month. A zero Month or Year
// defaults independently to today's value.
type DashboardRequest struct {
	Month int
	Year  int
}

// MonthlyTotals are the aggregate figures for one month. All amounts
// are paise; profit figures may be negative and are never clamped.
type MonthlyTotals struct {
	TotalSales    int64 `json:"total_sales"`
	TotalReceived int64 `json:"total_received"`
	TotalPending  int64 `json:"total_pending"`
	TotalExpense  int64 `json:"total_expense"`
	SalesProfit   int64 `json:"sales_profit"`
	NetProfit     int64 `json:"net_profit"`
}

// Dashboard is the full dashboard payload: the month's totals plus the
// clock-relative collection lists and the stock overview, which ignore
// the month filter.
type Dashboard struct {
	Month  int           `json:"month"`
	Year   int           `json:"year"`
	Totals MonthlyTotals `json:"totals"`

	OverduePayments  []invoicedomain.Invoice `json:"overdue_payments"`
	PaymentsDueToday []invoicedomain.Invoice `json:"payments_due_today"`
	UpcomingPayments []invoicedomain.Invoice `json:"upcoming_payments"`
	PendingInvoices  []invoicedomain.Invoice `json:"pending_invoices"`

	AvailableProducts []productdomain.Product `json:"available_products"`
	OutOfStockCount   int64                   `json:"out_of_stock_count"`
}
