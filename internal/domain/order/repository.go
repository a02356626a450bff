package order

import "context"

// Repository persists order aggregates.
type Repository interface {
	// Create stores a new order and returns the materialized aggregate,
	// including its persisted line items.
	Create(ctx context.Context, params CreateParams) (*Order, error)
}
