package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUserNotFound is returned by login when the username is unknown.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownProduct is returned by stock adjustments on an absent SKU.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrInvalidQuantity rejects cart lines with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrUnsupportedMethod indicates a payment method with no registered strategy.
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	// ErrEmptyCart rejects a placement attempt on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// InsufficientStockError reports the first cart line that cannot be filled.
// It is the only expected business failure of order placement; when it is
// returned no stock has been adjusted and the cart is untouched.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for SKU %s: requested %d, available %d", e.SKU, e.Requested, e.Available)
}
