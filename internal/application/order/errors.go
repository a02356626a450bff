package order

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound = errors.New("order: could not find customer with the given id")
	ErrNoProductsFound  = errors.New("order: could not find products with the given ids")
)

// ProductNotFoundError names the first requested product id absent from
// inventory. When several are missing only the first, in request order, is
// reported.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("order: could not find product with id %s", e.ProductID)
}

// InsufficientStockError names the first request line whose quantity
// exceeds available stock.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("order: quantity %d is not available for product id %s", e.Requested, e.ProductID)
}
