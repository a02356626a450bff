package customer

import "context"

// Repository looks customers up by their identifier.
// Implementations return ErrNotFound when no record exists.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Customer, error)
}
