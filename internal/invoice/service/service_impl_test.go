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
	customerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/customer/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	ledgerservice "github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/service"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/seed"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var saleDate = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestCreateInvoiceMarksProductSold(t *testing.T) {
	db, svc := setupInvoiceTest(t)
	customer := insertCustomer(t, db, svc.genID, "9876543210")
	product := insertProduct(t, db, svc.genID, "353910100000001", 700000, true)

	inv, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		ProductID:   product.ID.String(),
		TotalAmount: "10000",
		AmountPaid:  "4000",
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if inv.BalanceAmount != 600000 {
		t.Fatalf("expected balance 600000, got %d", inv.BalanceAmount)
	}
	if inv.Status() != invoicedomain.StatusDue {
		t.Fatalf("expected DUE, got %s", inv.Status())
	}
	if inv.Product == nil || inv.Product.ID != product.ID {
		t.Fatalf("expected product preloaded on invoice")
	}

	var reloaded productdomain.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.IsAvailable {
		t.Fatalf("expected product marked sold")
	}

	var lines int64
	if err := db.Table("ledger_entry_lines").Count(&lines).Error; err != nil {
		t.Fatalf("count ledger lines: %v", err)
	}
	if lines != 3 {
		t.Fatalf("expected 3 posting lines, got %d", lines)
	}
	var published int64
	if err := db.Table("shop_events").Where("event_type = ?", events.EventInvoiceCreated).Count(&published).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if published != 1 {
		t.Fatalf("expected 1 invoice.created event, got %d", published)
	}
}

func TestCreateInvoiceRejectsSoldProduct(t *testing.T) {
	db, svc := setupInvoiceTest(t)
	customer := insertCustomer(t, db, svc.genID, "9876543211")
	product := insertProduct(t, db, svc.genID, "353910100000002", 700000, true)

	req := invoicedomain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		ProductID:   product.ID.String(),
		TotalAmount: "10000",
	}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first sale: %v", err)
	}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, invoicedomain.ErrProductUnavailable) {
		t.Fatalf("expected product_unavailable, got %v", err)
	}

	var count int64
	if err := db.Model(&invoicedomain.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count invoices: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single invoice after double sale, got %d", count)
	}
}

func TestCreateInvoiceUnknownReferences(t *testing.T) {
	db, svc := setupInvoiceTest(t)
	customer := insertCustomer(t, db, svc.genID, "9876543212")
	product := insertProduct(t, db, svc.genID, "353910100000003", 700000, true)

	_, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		ProductID:   "424242",
		TotalAmount: "10000",
	})
	if !errors.Is(err, invoicedomain.ErrProductNotFound) {
		t.Fatalf("expected product_not_found, got %v", err)
	}

	_, err = svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		CustomerID:  "424242",
		ProductID:   product.ID.String(),
		TotalAmount: "10000",
	})
	if !errors.Is(err, invoicedomain.ErrCustomerNotFound) {
		t.Fatalf("expected customer_not_found, got %v", err)
	}

	// Neither failure may leave the unit flipped or a row behind.
	var reloaded productdomain.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if !reloaded.IsAvailable {
		t.Fatalf("expected product still available after failed sales")
	}
	var count int64
	if err := db.Model(&invoicedomain.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count invoices: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no invoices, got %d", count)
	}
}

func TestCreateInvoiceRejectsBadAmounts(t *testing.T) {
	db, svc := setupInvoiceTest(t)
	customer := insertCustomer(t, db, svc.genID, "9876543213")
	product := insertProduct(t, db, svc.genID, "353910100000004", 700000, true)

	_, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		ProductID:   product.ID.String(),
		TotalAmount: "10000",
		AmountPaid:  "10001",
	})
	if !errors.Is(err, invoicedomain.ErrPaidExceedsTotal) {
		t.Fatalf("expected paid_exceeds_total, got %v", err)
	}

	for _, amount := range []string{"", "-100", "10.005", "abc", "92233720368547758.08"} {
		_, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
			CustomerID:  customer.ID.String(),
			ProductID:   product.ID.String(),
			TotalAmount: amount,
		})
		if !errors.Is(err, invoicedomain.ErrInvalidAmount) {
			t.Fatalf("amount %q: expected invalid_amount, got %v", amount, err)
		}
	}
}

func TestListPendingOnly(t *testing.T) {
	db, svc := setupInvoiceTest(t)
	customer := insertCustomer(t, db, svc.genID, "9876543214")
	settled := insertProduct(t, db, svc.genID, "353910100000005", 700000, true)
	open := insertProduct(t, db, svc.genID, "353910100000006", 700000, true)

	if _, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		ProductID:   settled.ID.String(),
		TotalAmount: "5000",
		AmountPaid:  "5000",
	}); err != nil {
		t.Fatalf("create settled invoice: %v", err)
	}
	pending, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		ProductID:   open.ID.String(),
		TotalAmount: "3000",
		AmountPaid:  "1000",
	})
	if err != nil {
		t.Fatalf("create pending invoice: %v", err)
	}

	records, err := svc.List(context.Background(), invoicedomain.ListInvoiceRequest{PendingOnly: true})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(records) != 1 || records[0].ID != pending.ID {
		t.Fatalf("expected only the pending invoice, got %d records", len(records))
	}
}

func setupInvoiceTest(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()
	db := openShopTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	svc := &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.Fixed(saleDate),
		ledgerSvc: ledgerservice.NewService(ledgerservice.ServiceParam{
			DB:    db,
			Log:   zap.NewNop(),
			GenID: node,
		}),
		outbox: events.NewOutbox(db, node),
	}
	return db, svc
}

func openShopTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			address TEXT,
			photo_path TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			brand TEXT NOT NULL,
			model_name TEXT NOT NULL,
			imei TEXT NOT NULL UNIQUE,
			purchase_price BIGINT NOT NULL,
			selling_price BIGINT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id INTEGER PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			total_amount BIGINT NOT NULL,
			amount_paid BIGINT NOT NULL DEFAULT 0,
			balance_amount BIGINT NOT NULL DEFAULT 0,
			payment_mode TEXT NOT NULL DEFAULT 'CASH',
			transaction_id TEXT,
			due_date TIMESTAMP,
			sale_date TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_accounts (
			id INTEGER PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id INTEGER PRIMARY KEY,
			source_type TEXT NOT NULL,
			source_id BIGINT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entry_lines (
			id INTEGER PRIMARY KEY,
			ledger_entry_id BIGINT NOT NULL,
			account_id BIGINT NOT NULL,
			direction TEXT NOT NULL,
			amount BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
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
	if err := seed.EnsureLedgerAccounts(db); err != nil {
		t.Fatalf("seed accounts: %v", err)
	}
	return db
}

func insertCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node, phone string) customerdomain.Customer {
	t.Helper()
	record := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Walk In",
		Phone:     phone,
		CreatedAt: saleDate,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return record
}

func insertProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, imei string, purchasePrice int64, available bool) productdomain.Product {
	t.Helper()
	record := productdomain.Product{
		ID:            node.Generate(),
		Brand:         "Samsung",
		ModelName:     "Galaxy M34",
		IMEI:          imei,
		PurchasePrice: purchasePrice,
		SellingPrice:  purchasePrice + 200000,
		IsAvailable:   available,
		CreatedAt:     saleDate,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return record
}
