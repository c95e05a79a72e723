package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	expensedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/expense/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var expenseNow = time.Date(2025, time.March, 18, 16, 45, 0, 0, time.UTC)

func TestCreateExpenseDefaultsToToday(t *testing.T) {
	_, svc := setupExpenseTest(t)

	expense, err := svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "March rent",
		Amount:      "12000",
		ExpenseType: "Rent",
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	want := time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC)
	if !expense.Date.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, expense.Date)
	}
	if expense.Amount != 1200000 {
		t.Fatalf("expected amount 1200000, got %d", expense.Amount)
	}
}

func TestCreateExpenseWithExplicitDate(t *testing.T) {
	_, svc := setupExpenseTest(t)

	date := "2025-02-28"
	expense, err := svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "Electricity bill",
		Amount:      "950.75",
		ExpenseType: "Electricity",
		Date:        &date,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	want := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !expense.Date.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, expense.Date)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	_, svc := setupExpenseTest(t)

	_, err := svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "  ",
		Amount:      "100",
		ExpenseType: "Rent",
	})
	if !errors.Is(err, expensedomain.ErrInvalidTitle) {
		t.Fatalf("expected invalid_title, got %v", err)
	}

	_, err = svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "Chai",
		Amount:      "-100",
		ExpenseType: "Tea/Food",
	})
	if !errors.Is(err, expensedomain.ErrInvalidAmount) {
		t.Fatalf("expected invalid_expense_amount, got %v", err)
	}

	_, err = svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "Chai",
		Amount:      "100",
		ExpenseType: "Snacks",
	})
	if !errors.Is(err, expensedomain.ErrInvalidType) {
		t.Fatalf("expected invalid_expense_type, got %v", err)
	}
}

func TestListFiltersByMonth(t *testing.T) {
	_, svc := setupExpenseTest(t)

	if _, err := svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "March rent",
		Amount:      "12000",
		ExpenseType: "Rent",
	}); err != nil {
		t.Fatalf("create march expense: %v", err)
	}
	date := "2025-02-10"
	if _, err := svc.Create(context.Background(), expensedomain.CreateExpenseRequest{
		Title:       "February rent",
		Amount:      "12000",
		ExpenseType: "Rent",
		Date:        &date,
	}); err != nil {
		t.Fatalf("create february expense: %v", err)
	}

	records, err := svc.List(context.Background(), expensedomain.ListExpenseRequest{Month: 3, Year: 2025})
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(records) != 1 || records[0].Title != "March rent" {
		t.Fatalf("expected only the March expense, got %d", len(records))
	}

	_, err = svc.List(context.Background(), expensedomain.ListExpenseRequest{Month: 13, Year: 2025})
	if !errors.Is(err, expensedomain.ErrInvalidPeriod) {
		t.Fatalf("expected invalid_period, got %v", err)
	}
}

func setupExpenseTest(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			amount BIGINT NOT NULL,
			expense_type TEXT NOT NULL,
			date TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shop_events (
			id INTEGER PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload TEXT,
			dedupe_key TEXT,
			published BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_shop_events_dedupe_key ON shop_events (dedupe_key)`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	svc := &Service{
		db:          db,
		log:         zap.NewNop(),
		genID:       node,
		clock:       clock.Fixed(expenseNow),
		outbox:      events.NewOutbox(db, node),
		expenserepo: repository.ProvideStore[expensedomain.Expense](db),
	}
	return db, svc
}
