package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"homesteadhub/internal/domain"
)

// Cart is a customer's in-progress, mutable collection of line items, keyed
// by SKU. Adding a SKU that is already present accumulates quantity onto the
// existing line; the unit price captured when the line was first created is
// kept, so price changes between add and checkout do not move the line.
type Cart struct {
	mu         sync.Mutex
	customerID string
	lines      map[string]*domain.LineItem
	skus       []string // insertion order
}

// New returns an empty cart owned by the given customer.
func New(customerID string) *Cart {
	return &Cart{
		customerID: customerID,
		lines:      make(map[string]*domain.LineItem),
	}
}

// CustomerID returns the owning customer's ID.
func (c *Cart) CustomerID() string {
	return c.customerID
}

// AddLine adds quantity units of the product to the cart. Quantity must be
// positive.
func (c *Cart) AddLine(product domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[product.SKU]; ok {
		line.Quantity += quantity
		return nil
	}
	c.lines[product.SKU] = &domain.LineItem{
		SKU:            product.SKU,
		Title:          product.Title,
		Quantity:       quantity,
		UnitPrice:      product.UnitPrice,
		FarmerUsername: product.FarmerUsername,
	}
	c.skus = append(c.skus, product.SKU)
	return nil
}

// RemoveLine drops the line for the given SKU. Removing an absent SKU is a
// no-op.
func (c *Cart) RemoveLine(sku string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[sku]; !ok {
		return
	}
	delete(c.lines, sku)
	for i, s := range c.skus {
		if s == sku {
			c.skus = append(c.skus[:i], c.skus[i+1:]...)
			break
		}
	}
}

// Lines returns copies of the cart's lines in insertion order.
func (c *Cart) Lines() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linesLocked()
}

func (c *Cart) linesLocked() []domain.LineItem {
	out := make([]domain.LineItem, 0, len(c.skus))
	for _, sku := range c.skus {
		out = append(out, *c.lines[sku])
	}
	return out
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Subtotal sums the line totals, each independently rounded to 2 decimal
// places before summation.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

func (c *Cart) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for _, sku := range c.skus {
		subtotal = subtotal.Add(c.lines[sku].Total())
	}
	return subtotal
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cart) clearLocked() {
	c.lines = make(map[string]*domain.LineItem)
	c.skus = nil
}

// Checkout hands the cart's lines and subtotal to fn and clears the cart
// when fn returns nil. The cart lock is held for the whole call, so
// concurrent checkouts of the same cart serialize and mutations wait until
// the placement finishes.
func (c *Cart) Checkout(fn func(lines []domain.LineItem, subtotal decimal.Decimal) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fn(c.linesLocked(), c.subtotalLocked()); err != nil {
		return err
	}
	c.clearLocked()
	return nil
}
