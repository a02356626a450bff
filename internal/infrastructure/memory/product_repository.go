package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/mercadinho-dev/gostore/internal/domain/product"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
	}
}

// Seed inserts or replaces an inventory record.
func (r *ProductRepository) Seed(p *domain.Product) {
	if p == nil || p.ID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = cloneProduct(p)
}

// FindAllByID returns the records matching the given ids. Duplicate ids in
// the request yield a single record; missing ids are omitted.
func (r *ProductRepository) FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if p, ok := r.products[id]; ok {
			out = append(out, *cloneProduct(p))
		}
	}

	return out, nil
}

func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domain.QuantityUpdate) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		p, ok := r.products[u.ID]
		if !ok {
			return fmt.Errorf("product repository: update quantity: %w (id %s)", domain.ErrNotFound, u.ID)
		}
		p.Quantity = u.Quantity
	}

	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
