package service

import (
	"context"
	"time"

	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	expensedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/expense/domain"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
	reportdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// upcomingWindow is how far ahead of today the "upcoming payments" list
// looks, inclusive.
const upcomingWindow = 24 * time.Hour

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func NewService(p ServiceParam) reportdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("report.service"),
		clock: p.Clock,
	}
}

func (s *Service) Dashboard(ctx context.Context, req reportdomain.DashboardRequest) (reportdomain.Dashboard, error) {
	now := s.clock.Now()
	month, year := req.Month, req.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 0 {
		return reportdomain.Dashboard{}, reportdomain.ErrInvalidPeriod
	}

	totals, err := s.monthlyTotals(ctx, month, year)
	if err != nil {
		return reportdomain.Dashboard{}, err
	}

	dashboard := reportdomain.Dashboard{
		Month:  month,
		Year:   year,
		Totals: totals,
	}

	today := truncateToDay(now)
	horizon := today.Add(upcomingWindow)

	if dashboard.OverduePayments, err = s.pendingWhere(ctx, "due_date < ?", today); err != nil {
		return reportdomain.Dashboard{}, err
	}
	if dashboard.PaymentsDueToday, err = s.pendingWhere(ctx, "due_date = ?", today); err != nil {
		return reportdomain.Dashboard{}, err
	}
	if dashboard.UpcomingPayments, err = s.pendingWhere(ctx, "due_date > ? AND due_date <= ?", today, horizon); err != nil {
		return reportdomain.Dashboard{}, err
	}
	if dashboard.PendingInvoices, err = s.pendingWhere(ctx, ""); err != nil {
		return reportdomain.Dashboard{}, err
	}

	err = s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Find(&dashboard.AvailableProducts).Error
	if err != nil {
		return reportdomain.Dashboard{}, err
	}
	err = s.db.WithContext(ctx).
		Model(&productdomain.Product{}).
		Where("is_available = ?", false).
		Count(&dashboard.OutOfStockCount).Error
	if err != nil {
		return reportdomain.Dashboard{}, err
	}

	return dashboard, nil
}

func (s *Service) monthlyTotals(ctx context.Context, month, year int) (reportdomain.MonthlyTotals, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var sums struct {
		TotalSales    int64
		TotalReceived int64
		TotalPending  int64
	}
	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Select(
			"COALESCE(SUM(total_amount), 0) AS total_sales," +
				" COALESCE(SUM(amount_paid), 0) AS total_received," +
				" COALESCE(SUM(balance_amount), 0) AS total_pending",
		).
		Scan(&sums).Error
	if err != nil {
		return reportdomain.MonthlyTotals{}, err
	}

	var totalExpense int64
	err = s.db.WithContext(ctx).
		Model(&expensedomain.Expense{}).
		Where("date >= ? AND date < ?", start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalExpense).Error
	if err != nil {
		return reportdomain.MonthlyTotals{}, err
	}

	// Per-invoice margin; kept in Go so a missing product reference
	// counts as zero profit instead of failing the report.
	var monthInvoices []invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Product").
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Find(&monthInvoices).Error
	if err != nil {
		return reportdomain.MonthlyTotals{}, err
	}
	var salesProfit int64
	for i := range monthInvoices {
		salesProfit += monthInvoices[i].Profit()
	}

	return reportdomain.MonthlyTotals{
		TotalSales:    sums.TotalSales,
		TotalReceived: sums.TotalReceived,
		TotalPending:  sums.TotalPending,
		TotalExpense:  totalExpense,
		SalesProfit:   salesProfit,
		NetProfit:     salesProfit - totalExpense,
	}, nil
}

func (s *Service) pendingWhere(ctx context.Context, cond string, args ...any) ([]invoicedomain.Invoice, error) {
	query := s.db.WithContext(ctx).
		Preload("Product").
		Where("balance_amount > 0")
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var records []invoicedomain.Invoice
	if err := query.Order("due_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func truncateToDay(at time.Time) time.Time {
	at = at.UTC()
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
}
