package product

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("product: not found")
	ErrInvalidPrice    = errors.New("product: price must be zero or greater")
	ErrInvalidQuantity = errors.New("product: quantity must be zero or greater")
)

// Product is one inventory record: unit price plus available stock.
type Product struct {
	ID        string
	Name      string
	Price     float64
	Quantity  int
	UpdatedAt time.Time
}

// QuantityUpdate sets the absolute stock level for one product.
type QuantityUpdate struct {
	ID       string
	Quantity int
}

func New(id, name string, price float64, quantity int) (*Product, error) {
	if id == "" {
		return nil, errors.New("product: id is required")
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
