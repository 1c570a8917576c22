package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"homesteadhub/internal/domain"
)

// Strategy settles a payment of the given amount. It is invoked exactly once
// per placement attempt and never retried by the caller. Business failures
// (declined card, bad token) are reported through the outcome; an error return
// is reserved for programming mistakes such as a malformed detail.
type Strategy interface {
	ProcessTransaction(ctx context.Context, amount decimal.Decimal, detail domain.PaymentDetail) (domain.PaymentOutcome, error)
}

// Registry maps payment method keys to strategies. Methods are registered at
// startup; looking up an unregistered method is a configuration error.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register binds a strategy to a method key, replacing any previous binding.
func (r *Registry) Register(method string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[method] = s
}

// Lookup returns the strategy for the method key.
func (r *Registry) Lookup(method string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, method)
	}
	return s, nil
}

// Methods returns the registered method keys.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.strategies))
	for method := range r.strategies {
		out = append(out, method)
	}
	return out
}
