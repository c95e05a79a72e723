package domain

import (
	"testing"

	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
)

func TestRecomputeBalanceFullCredit(t *testing.T) {
	inv := Invoice{TotalAmount: 1000000, AmountPaid: 0}
	inv.RecomputeBalance()

	if inv.BalanceAmount != 1000000 {
		t.Fatalf("expected balance 1000000, got %d", inv.BalanceAmount)
	}
	if got := inv.Status(); got != StatusDue {
		t.Fatalf("expected status %s, got %s", StatusDue, got)
	}
}

func TestRecomputeBalanceIdempotent(t *testing.T) {
	inv := Invoice{TotalAmount: 1000000, AmountPaid: 400000}
	inv.RecomputeBalance()
	first := inv.BalanceAmount
	inv.RecomputeBalance()

	if inv.BalanceAmount != first {
		t.Fatalf("balance drifted on recompute: %d then %d", first, inv.BalanceAmount)
	}
	if inv.BalanceAmount != 600000 {
		t.Fatalf("expected balance 600000, got %d", inv.BalanceAmount)
	}
}

func TestStatusPaidAtZeroBalance(t *testing.T) {
	inv := Invoice{TotalAmount: 1000000, AmountPaid: 1000000}
	inv.RecomputeBalance()

	if inv.BalanceAmount != 0 {
		t.Fatalf("expected zero balance, got %d", inv.BalanceAmount)
	}
	if got := inv.Status(); got != StatusPaid {
		t.Fatalf("expected status %s, got %s", StatusPaid, got)
	}
}

func TestProfitFromPurchasePrice(t *testing.T) {
	inv := Invoice{
		TotalAmount: 1000000,
		Product:     &productdomain.Product{PurchasePrice: 700000},
	}
	if got := inv.Profit(); got != 300000 {
		t.Fatalf("expected profit 300000, got %d", got)
	}
}

func TestProfitNegativeNotClamped(t *testing.T) {
	inv := Invoice{
		TotalAmount: 500000,
		Product:     &productdomain.Product{PurchasePrice: 700000},
	}
	if got := inv.Profit(); got != -200000 {
		t.Fatalf("expected profit -200000, got %d", got)
	}
}

func TestProfitZeroWithoutProduct(t *testing.T) {
	inv := Invoice{TotalAmount: 1000000}
	if got := inv.Profit(); got != 0 {
		t.Fatalf("expected zero profit for missing product, got %d", got)
	}
}
