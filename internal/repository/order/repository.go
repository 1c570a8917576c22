package order

import (
	"context"

	"homesteadhub/internal/domain"
)

// Repository is the durable order ledger. Save persists the order and its
// line items in one transaction so a crash can never leave an order without
// lines. Lookups return domain.ErrNotFound when no order matches.
type Repository interface {
	Save(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, orderID, customerID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListLines(ctx context.Context) ([]domain.LineItem, error)
	ListLinesToFarmer(ctx context.Context, farmerUsername string) ([]domain.LineItem, error)
}
