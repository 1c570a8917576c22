// Package pricing computes checkout charges on top of a cart subtotal.
// A flat sales-tax rate and a market service fee; every figure is rounded to
// 2 decimal places.
package pricing

import "github.com/shopspring/decimal"

var (
	salesTaxRate   = decimal.RequireFromString("0.0825")
	serviceFeeRate = decimal.RequireFromString("0.05")
)

// Charges is the checkout cost breakdown. TotalDue is what the customer owes;
// the order's own total stays equal to the subtotal.
type Charges struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	ServiceFee decimal.Decimal `json:"serviceFee"`
	TotalDue   decimal.Decimal `json:"totalDue"`
}

// Tax returns the sales tax for the subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(salesTaxRate).Round(2)
}

// ServiceFee returns the market service fee for the subtotal.
func ServiceFee(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(serviceFeeRate).Round(2)
}

// Quote builds the full charge breakdown for a subtotal.
func Quote(subtotal decimal.Decimal) Charges {
	tax := Tax(subtotal)
	fee := ServiceFee(subtotal)
	return Charges{
		Subtotal:   subtotal,
		Tax:        tax,
		ServiceFee: fee,
		TotalDue:   subtotal.Add(tax).Add(fee).Round(2),
	}
}
