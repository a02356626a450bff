package cached

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mercadinho-dev/gostore/internal/domain/customer"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/memory"
)

type fakeCache struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	default:
		f.values[key] = fmt.Sprint(v)
	}
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.values[key], nil
}

func (f *fakeCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("test:%s:%s", operation, key)
}

type countingRepository struct {
	next  domain.Repository
	calls int
}

func (c *countingRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	c.calls++
	return c.next.FindByID(ctx, id)
}

func seedStore(t *testing.T) *memory.CustomerRepository {
	t.Helper()
	store := memory.NewCustomerRepository()
	c, err := domain.New("c1", "Demo Customer", "demo@gostore.dev")
	require.NoError(t, err)
	store.Seed(c)
	return store
}

func TestCustomerRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	counting := &countingRepository{next: seedStore(t)}
	fake := newFakeCache()

	repo := NewCustomerRepository(counting, fake, time.Minute, nil)

	first, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", first.ID)
	assert.Equal(t, 1, counting.calls)
	assert.Equal(t, 1, fake.sets)

	second, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, counting.calls, "second lookup should be served from cache")
}

func TestCustomerRepository_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	counting := &countingRepository{next: seedStore(t)}
	fake := newFakeCache()

	repo := NewCustomerRepository(counting, fake, time.Minute, nil)

	_, err := repo.FindByID(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, fake.sets)

	_, err = repo.FindByID(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, counting.calls)
}

func TestCustomerRepository_CacheFailuresFallThrough(t *testing.T) {
	ctx := context.Background()
	counting := &countingRepository{next: seedStore(t)}
	fake := newFakeCache()
	fake.getErr = errors.New("redis down")
	fake.setErr = errors.New("redis down")

	repo := NewCustomerRepository(counting, fake, time.Minute, nil)

	found, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", found.ID)
	assert.Equal(t, 1, counting.calls)
}

func TestCustomerRepository_InvalidPayloadFallsThrough(t *testing.T) {
	ctx := context.Background()
	counting := &countingRepository{next: seedStore(t)}
	fake := newFakeCache()
	fake.values[fake.GenerateKey(customerLookupOp, "c1")] = "{not json"

	repo := NewCustomerRepository(counting, fake, time.Minute, nil)

	found, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Demo Customer", found.Name)
	assert.Equal(t, 1, counting.calls)
}
