package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry keyed by SKU. Stock is never negative and is
// mutated only through the catalog store's adjust operations.
type Product struct {
	SKU            string          `json:"sku"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Stock          int             `json:"stock"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	FarmerID       string          `json:"farmerId"`
	FarmerUsername string          `json:"farmerUsername"`
	CreatedAt      time.Time       `json:"createdAt"`
}
