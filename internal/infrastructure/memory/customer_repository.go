package memory

import (
	"context"
	"sync"

	domain "github.com/mercadinho-dev/gostore/internal/domain/customer"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// Seed inserts or replaces a customer record.
func (r *CustomerRepository) Seed(c *domain.Customer) {
	if c == nil || c.ID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[c.ID] = cloneCustomer(c)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return cloneCustomer(c), nil
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
