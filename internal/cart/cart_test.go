package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"homesteadhub/internal/domain"
)

func product(sku string, price string) domain.Product {
	return domain.Product{
		SKU:            sku,
		Title:          "Test " + sku,
		UnitPrice:      decimal.RequireFromString(price),
		FarmerUsername: "farmer1",
	}
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	c := New("cust")
	if err := c.AddLine(product("APPLE1", "9.99"), 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if err := c.AddLine(product("APPLE1", "9.99"), -3); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
}

func TestAddLineAccumulatesQuantityKeepingFirstPrice(t *testing.T) {
	c := New("cust")
	if err := c.AddLine(product("APPLE1", "9.99"), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Price change between adds must not move the existing line.
	if err := c.AddLine(product("APPLE1", "12.50"), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected unit price 9.99, got %s", lines[0].UnitPrice)
	}
}

func TestLinesPreserveInsertionOrder(t *testing.T) {
	c := New("cust")
	for _, sku := range []string{"CARROT2", "APPLE1", "BEET3"} {
		if err := c.AddLine(product(sku, "1.00"), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	lines := c.Lines()
	want := []string{"CARROT2", "APPLE1", "BEET3"}
	for i, sku := range want {
		if lines[i].SKU != sku {
			t.Fatalf("expected %s at index %d, got %s", sku, i, lines[i].SKU)
		}
	}
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	c := New("cust")
	if err := c.AddLine(product("APPLE1", "9.99"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.RemoveLine("APPLE1")
	c.RemoveLine("APPLE1")
	c.RemoveLine("NEVER-ADDED")
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
}

func TestSubtotalRoundsPerLine(t *testing.T) {
	c := New("cust")
	// 3 * 0.333 = 0.999 -> 1.00 per line; aggregate rounding would give 2.00
	// from 1.998 as well here, so use values where the order matters.
	if err := c.AddLine(product("A", "0.333"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddLine(product("B", "0.333"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Per-line: 0.33 + 0.33 = 0.66. Aggregate-then-round would be 0.67.
	if got := c.Subtotal(); !got.Equal(decimal.RequireFromString("0.66")) {
		t.Fatalf("expected subtotal 0.66, got %s", got)
	}
}

func TestSubtotalIsIdempotent(t *testing.T) {
	c := New("cust")
	if err := c.AddLine(product("APPLE1", "9.99"), 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := c.Subtotal()
	second := c.Subtotal()
	if !first.Equal(second) {
		t.Fatalf("subtotal not idempotent: %s vs %s", first, second)
	}
	if !first.Equal(decimal.RequireFromString("99.90")) {
		t.Fatalf("expected subtotal 99.90, got %s", first)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := New("cust")
	if err := c.AddLine(product("APPLE1", "9.99"), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
	if !c.Subtotal().Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal, got %s", c.Subtotal())
	}
}

func TestCheckoutClearsOnlyOnSuccess(t *testing.T) {
	c := New("cust")
	if err := c.AddLine(product("APPLE1", "9.99"), 2); err != nil {
		t.Fatalf("add line: %v", err)
	}

	boom := errors.New("boom")
	err := c.Checkout(func(lines []domain.LineItem, subtotal decimal.Decimal) error {
		if len(lines) != 1 || !subtotal.Equal(decimal.RequireFromString("19.98")) {
			t.Fatalf("unexpected snapshot: %d lines, subtotal %s", len(lines), subtotal)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error returned, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected cart kept after failed placement")
	}

	if err := c.Checkout(func([]domain.LineItem, decimal.Decimal) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected cart cleared after successful placement")
	}
}

func TestStoreReturnsSameCartPerCustomer(t *testing.T) {
	s := NewStore()
	a := s.Get("cust1")
	b := s.Get("cust1")
	if a != b {
		t.Fatalf("expected same cart instance for one customer")
	}
	if s.Get("cust2") == a {
		t.Fatalf("expected distinct carts per customer")
	}
}
