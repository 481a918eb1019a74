package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidStatus   = errors.New("unknown order status")
)

// ProductUnavailableError aborts a checkout when a cart line's product cannot
// be priced: gone from the catalog, or the catalog did not answer in time.
// The client can drop the offending line and retry.
type ProductUnavailableError struct {
	ProductID int64
	Err       error
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d is unavailable: %v", e.ProductID, e.Err)
}

func (e *ProductUnavailableError) Unwrap() error {
	return e.Err
}
