package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/seed"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCreateEntryWritesBalancedPosting(t *testing.T) {
	db, svc, node := setupLedgerTest(t)

	lines := []ledgerdomain.Line{
		{AccountCode: ledgerdomain.AccountCodeCash, Direction: ledgerdomain.LedgerEntryDirectionDebit, Amount: 400000},
		{AccountCode: ledgerdomain.AccountCodeAccountsReceivable, Direction: ledgerdomain.LedgerEntryDirectionCredit, Amount: 400000},
	}
	err := svc.CreateEntry(context.Background(), ledgerdomain.SourceTypePayment, node.Generate(), time.Now().UTC(), lines)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	var entries, posted int64
	if err := db.Table("ledger_entries").Count(&entries).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entries != 1 {
		t.Fatalf("expected 1 entry, got %d", entries)
	}
	if err := db.Table("ledger_entry_lines").Count(&posted).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if posted != 2 {
		t.Fatalf("expected 2 lines, got %d", posted)
	}
}

func TestCreateEntryRejectsUnbalanced(t *testing.T) {
	db, svc, node := setupLedgerTest(t)

	lines := []ledgerdomain.Line{
		{AccountCode: ledgerdomain.AccountCodeCash, Direction: ledgerdomain.LedgerEntryDirectionDebit, Amount: 400000},
		{AccountCode: ledgerdomain.AccountCodeAccountsReceivable, Direction: ledgerdomain.LedgerEntryDirectionCredit, Amount: 300000},
	}
	err := svc.CreateEntry(context.Background(), ledgerdomain.SourceTypePayment, node.Generate(), time.Now().UTC(), lines)
	if !errors.Is(err, ledgerdomain.ErrUnbalancedEntry) {
		t.Fatalf("expected unbalanced_entry, got %v", err)
	}

	var entries int64
	if err := db.Table("ledger_entries").Count(&entries).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entries != 0 {
		t.Fatalf("expected no entries after rejection, got %d", entries)
	}
}

func TestCreateEntryRejectsUnknownAccount(t *testing.T) {
	db, svc, node := setupLedgerTest(t)

	lines := []ledgerdomain.Line{
		{AccountCode: "petty_cash", Direction: ledgerdomain.LedgerEntryDirectionDebit, Amount: 100000},
		{AccountCode: ledgerdomain.AccountCodeRevenue, Direction: ledgerdomain.LedgerEntryDirectionCredit, Amount: 100000},
	}
	err := svc.CreateEntry(context.Background(), ledgerdomain.SourceTypeInvoice, node.Generate(), time.Now().UTC(), lines)
	if !errors.Is(err, ledgerdomain.ErrInvalidAccount) {
		t.Fatalf("expected invalid_account, got %v", err)
	}

	// The failed posting must roll back the entry header too.
	var entries int64
	if err := db.Table("ledger_entries").Count(&entries).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entries != 0 {
		t.Fatalf("expected rollback, got %d entries", entries)
	}
}

func setupLedgerTest(t *testing.T) (*gorm.DB, ledgerdomain.Service, *snowflake.Node) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range []string{
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
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	if err := seed.EnsureLedgerAccounts(db); err != nil {
		t.Fatalf("seed accounts: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
	return db, svc, node
}
