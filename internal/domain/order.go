package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the canonical status set for placed orders. Status is the
// only field of an Order that may change after creation.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusProcessing     OrderStatus = "PROCESSING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// LineItem is one product line within a cart or a finalized order. Title and
// unit price are snapshots taken when the line was first created; once the
// line is attached to an order it is immutable. Customer and farmer usernames
// are denormalized onto persisted lines for farmer-side order queries.
type LineItem struct {
	OrderID          string          `json:"orderId,omitempty"`
	SKU              string          `json:"sku"`
	Title            string          `json:"title"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	CustomerUsername string          `json:"customerUsername,omitempty"`
	FarmerUsername   string          `json:"farmerUsername,omitempty"`
}

// Total is the line total, rounded to 2 decimal places. Rounding happens per
// line, not on the aggregate, so cart subtotals are reproducible.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Order is an immutable purchase record produced by a successful placement.
// Total is computed once from the cart subtotal at placement time and is not
// recomputed from the lines.
type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Lines           []LineItem      `json:"lineItems"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	Status          OrderStatus     `json:"status"`
	PaymentCode     OutcomeCode     `json:"paymentCode,omitempty"`
	PaymentRef      string          `json:"paymentRef,omitempty"`
	PaymentMessage  string          `json:"paymentMessage,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
