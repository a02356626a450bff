package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/mercadinho-dev/gostore/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Create(ctx context.Context, params domain.CreateParams) (*domain.Order, error) {
	_ = ctx
	if params.Customer == nil {
		return nil, fmt.Errorf("order repository: customer is required")
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		Customer:  params.Customer,
		Products:  params.Products,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order.Clone()
	return order.Clone(), nil
}

// Get is used by tests to inspect persisted orders.
func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order repository: order %s not found", id)
	}

	return order.Clone(), nil
}
