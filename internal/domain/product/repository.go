package product

import "context"

// Repository exposes the bulk inventory operations the order workflow needs.
type Repository interface {
	// FindAllByID returns the inventory records matching the given ids.
	// Missing ids are silently omitted; the result order is unspecified.
	FindAllByID(ctx context.Context, ids []string) ([]Product, error)
	// UpdateQuantity applies all updates in one call.
	UpdateQuantity(ctx context.Context, updates []QuantityUpdate) error
}
