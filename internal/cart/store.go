package cart

import "sync"

// Store holds the live carts, one per customer. Carts are created lazily and
// die with the process; orders are the durable record.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the customer's cart, creating it on first use.
func (s *Store) Get(customerID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[customerID]
	if !ok {
		c = New(customerID)
		s.carts[customerID] = c
	}
	return c
}
