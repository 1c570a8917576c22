package catalog

import (
	"sort"
	"sync"

	"homesteadhub/internal/domain"
)

// DefaultLowStockThreshold is the stock level below which a product shows up
// in the low-stock report.
const DefaultLowStockThreshold = 5

// Demand is one SKU/quantity pair to reserve out of the catalog.
type Demand struct {
	SKU      string
	Quantity int
}

// Store holds the product catalog keyed by SKU. It is the single shared
// mutable resource of the ordering core: all stock mutations go through it,
// and ReserveAll serializes concurrent placements so two orders can never
// both pass the stock check and decrement past zero.
type Store struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

// New returns an empty catalog store.
func New() *Store {
	return &Store{products: make(map[string]*domain.Product)}
}

// Get returns a copy of the product with the given SKU.
func (s *Store) Get(sku string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Add inserts or replaces the product by SKU.
func (s *Store) Add(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := product
	s.products[product.SKU] = &cp
}

// Remove drops the product and reports whether it was present.
func (s *Store) Remove(sku string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.products[sku]
	delete(s.products, sku)
	return ok
}

// AdjustStock applies stock -= delta and returns the new level. It fails with
// ErrUnknownProduct when the SKU is absent. Availability is the caller's
// check; the store still refuses an adjustment that would drive stock
// negative so the invariant holds even under a misbehaving caller.
func (s *Store) AdjustStock(sku string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[sku]
	if !ok {
		return 0, domain.ErrUnknownProduct
	}
	next := p.Stock - delta
	if next < 0 {
		return p.Stock, &domain.InsufficientStockError{SKU: sku, Requested: delta, Available: p.Stock}
	}
	p.Stock = next
	return next, nil
}

// ReserveAll validates that every demand can be filled and only then
// decrements stock for all of them, as one atomic step. On failure it returns
// an InsufficientStockError for the first unsatisfiable demand and no stock
// is touched. On success it returns the new stock level per SKU.
func (s *Store) ReserveAll(demands []Demand) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range demands {
		p, ok := s.products[d.SKU]
		if !ok {
			return nil, &domain.InsufficientStockError{SKU: d.SKU, Requested: d.Quantity, Available: 0}
		}
		if p.Stock < d.Quantity {
			return nil, &domain.InsufficientStockError{SKU: d.SKU, Requested: d.Quantity, Available: p.Stock}
		}
	}

	levels := make(map[string]int, len(demands))
	for _, d := range demands {
		p := s.products[d.SKU]
		p.Stock -= d.Quantity
		levels[d.SKU] = p.Stock
	}
	return levels, nil
}

// List returns copies of all products, ordered by SKU.
func (s *Store) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// ListLowStock returns products with stock strictly below the threshold,
// ordered by SKU.
func (s *Store) ListLowStock(threshold int) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Product
	for _, p := range s.products {
		if p.Stock < threshold {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}
