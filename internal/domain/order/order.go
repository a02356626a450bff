package order

import (
	"time"

	"github.com/mercadinho-dev/gostore/internal/domain/customer"
)

// OrderProduct is one priced line item within an order.
type OrderProduct struct {
	ProductID string
	Quantity  int
	Price     float64
}

// Order is the persisted aggregate: an owning customer plus its line items.
type Order struct {
	ID        string
	Customer  *customer.Customer
	Products  []OrderProduct
	CreatedAt time.Time
}

// CreateParams is the input the order store materializes an aggregate from.
type CreateParams struct {
	Customer *customer.Customer
	Products []OrderProduct
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Customer != nil {
		c := *o.Customer
		clone.Customer = &c
	}
	clone.Products = make([]OrderProduct, len(o.Products))
	copy(clone.Products, o.Products)
	return &clone
}
