// Package cached provides read-through caching decorators over the
// repository ports.
package cached

import (
	"context"
	"encoding/json"
	"time"

	domain "github.com/mercadinho-dev/gostore/internal/domain/customer"
	"github.com/mercadinho-dev/gostore/internal/observability"
	"github.com/mercadinho-dev/gostore/internal/pkg/cache"
)

const customerLookupOp = "customer.find_by_id"

// CustomerRepository caches successful lookups in front of another
// customer repository. Misses and cache failures fall through to the
// underlying store; not-found results are never cached.
type CustomerRepository struct {
	next  domain.Repository
	cache cache.Cache
	ttl   time.Duration
	log   observability.Logger
}

func NewCustomerRepository(next domain.Repository, c cache.Cache, ttl time.Duration, log observability.Logger) *CustomerRepository {
	if log == nil {
		log = observability.NopLogger()
	}
	return &CustomerRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
		log:   log.With(observability.F("component", "customer_cache")),
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	key := r.cache.GenerateKey(customerLookupOp, id)

	if raw, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("cache_get_failed", observability.F("error", err.Error()))
	} else if raw != "" {
		var c domain.Customer
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			return &c, nil
		}
		r.log.Warn("cache_payload_invalid", observability.F("key", key))
	}

	c, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(c); err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl); err != nil {
			r.log.Warn("cache_set_failed", observability.F("error", err.Error()))
		}
	}

	return c, nil
}
