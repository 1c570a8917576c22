package product

import (
	"context"

	"homesteadhub/internal/domain"
)

// Repository persists catalog products. Lookups return domain.ErrNotFound
// when no product matches.
type Repository interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]domain.Product, error)
	UpdateStock(ctx context.Context, sku string, stock int) error
}
