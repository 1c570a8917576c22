package checkout

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homesteadhub/internal/cart"
	"homesteadhub/internal/catalog"
	"homesteadhub/internal/domain"
	"homesteadhub/internal/payment"
)

type orderRepo interface {
	Save(ctx context.Context, order domain.Order) (*domain.Order, error)
}

type stockWriter interface {
	UpdateStock(ctx context.Context, sku string, stock int) error
}

// Service runs the order placement transaction: reserve stock, execute the
// payment, persist the immutable order record, clear the cart.
type Service struct {
	catalog  *catalog.Store
	payments *payment.Registry
	orders   orderRepo
	products stockWriter
	logger   *log.Logger
	now      func() time.Time
}

// New creates a checkout Service.
func New(cat *catalog.Store, payments *payment.Registry, orders orderRepo, products stockWriter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		catalog:  cat,
		payments: payments,
		orders:   orders,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

// PlaceOrder takes the customer's cart through placement. Every cart line
// must be satisfiable before any stock is adjusted; a line that is not stops
// the whole placement with an InsufficientStockError and leaves the catalog
// and the cart exactly as they were. The payment strategy is invoked exactly
// once; a failed payment outcome still produces an order, carrying the
// outcome on its record. The cart is cleared only after the order is
// persisted.
//
// The whole placement runs under the cart's checkout lock, so two concurrent
// placements of the same cart serialize; the loser sees the cleared cart and
// fails with ErrEmptyCart instead of producing a duplicate order.
//
// Cancellation via ctx is honored only before stock is reserved; from that
// point the placement runs to completion and the order is always recorded.
func (s *Service) PlaceOrder(ctx context.Context, customer *domain.User, c *cart.Cart, detail domain.PaymentDetail) (*domain.Order, error) {
	var saved *domain.Order
	err := c.Checkout(func(lines []domain.LineItem, subtotal decimal.Decimal) error {
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		// Resolve the strategy before touching stock so a misconfigured method
		// fails without side effects.
		strategy, err := s.payments.Lookup(detail.Method)
		if err != nil {
			return err
		}

		// Last abort point: once stock is reserved the placement runs to
		// completion so a cancelled request cannot strand reserved stock.
		if err := ctx.Err(); err != nil {
			return err
		}

		demands := make([]catalog.Demand, len(lines))
		for i, line := range lines {
			demands[i] = catalog.Demand{SKU: line.SKU, Quantity: line.Quantity}
		}
		levels, err := s.catalog.ReserveAll(demands)
		if err != nil {
			s.logger.Printf("checkout: rejected customer=%s: %v", customer.Username, err)
			return err
		}
		for sku, stock := range levels {
			if err := s.products.UpdateStock(ctx, sku, stock); err != nil {
				return err
			}
		}

		outcome, err := strategy.ProcessTransaction(ctx, subtotal, detail)
		if err != nil {
			return err
		}
		s.logger.Printf("checkout: payment method=%s code=%s ref=%s", detail.Method, outcome.Code, outcome.Reference)

		order := domain.Order{
			ID:              uuid.NewString(),
			CustomerID:      customer.ID,
			Total:           subtotal,
			ShippingAddress: customer.ShippingAddress,
			Status:          outcome.OrderStatus(),
			PaymentCode:     outcome.Code,
			PaymentRef:      outcome.Reference,
			PaymentMessage:  outcome.Message,
			CreatedAt:       s.now().UTC(),
		}
		order.Lines = make([]domain.LineItem, len(lines))
		for i, line := range lines {
			line.OrderID = order.ID
			line.CustomerUsername = customer.Username
			order.Lines[i] = line
		}

		saved, err = s.orders.Save(ctx, order)
		if err != nil {
			return err
		}
		s.logger.Printf("checkout: placed order id=%s customer=%s total=%s status=%s", saved.ID, customer.Username, saved.Total, saved.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
