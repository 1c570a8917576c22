package inventory

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"homesteadhub/internal/catalog"
	"homesteadhub/internal/domain"
	productrepo "homesteadhub/internal/repository/product"
)

// Service is the catalog facade: it keeps the in-memory catalog store and the
// product repository in step. Reads are served from the store; writes go
// through the repository first.
type Service struct {
	store  *catalog.Store
	repo   productrepo.Repository
	logger *log.Logger
}

// New creates a Service over the given store and repository.
func New(store *catalog.Store, repo productrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, repo: repo, logger: logger}
}

// Load populates the catalog store from the repository. Called once at
// startup before the server accepts requests.
func (s *Service) Load(ctx context.Context) error {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		s.store.Add(p)
	}
	s.logger.Printf("inventory: loaded %d products into catalog", len(products))
	return nil
}

// AddProduct validates and persists a new (or replacement) product supplied
// by a farmer, then publishes the stored row to the catalog. A missing SKU
// is generated. Re-using a SKU owned by a different farmer fails with
// ErrAlreadyExists and leaves both the row and the catalog untouched.
func (s *Service) AddProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return nil, errors.New("title required")
	}
	if p.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}
	if p.UnitPrice.IsNegative() {
		return nil, errors.New("unit price must not be negative")
	}
	if strings.TrimSpace(p.SKU) == "" {
		p.SKU = uuid.NewString()
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	s.store.Add(*saved)
	return saved, nil
}

// Products returns the catalog, ordered by SKU.
func (s *Service) Products() []domain.Product {
	return s.store.List()
}

// Product returns a single catalog entry by SKU.
func (s *Service) Product(sku string) (*domain.Product, error) {
	return s.store.Get(sku)
}

// ProductsByFarmer returns the products supplied by one farmer.
func (s *Service) ProductsByFarmer(ctx context.Context, farmerID string) ([]domain.Product, error) {
	return s.repo.ListByFarmer(ctx, farmerID)
}

// LowStock returns products with stock strictly below the threshold. A
// threshold of zero or less falls back to the default.
func (s *Service) LowStock(threshold int) []domain.Product {
	if threshold <= 0 {
		threshold = catalog.DefaultLowStockThreshold
	}
	return s.store.ListLowStock(threshold)
}
