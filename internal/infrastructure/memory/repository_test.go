package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainCustomer "github.com/mercadinho-dev/gostore/internal/domain/customer"
	domainOrder "github.com/mercadinho-dev/gostore/internal/domain/order"
	domainProduct "github.com/mercadinho-dev/gostore/internal/domain/product"
)

func TestCustomerRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	c, err := domainCustomer.New("c1", "Demo Customer", "demo@gostore.dev")
	require.NoError(t, err)
	repo.Seed(c)

	found, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", found.ID)
	assert.Equal(t, "Demo Customer", found.Name)

	// Mutating the returned record must not leak into the store.
	found.Name = "changed"
	again, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Demo Customer", again.Name)

	_, err = repo.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, domainCustomer.ErrNotFound)
}

func TestProductRepository_FindAllByID(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	for _, seed := range []struct {
		id       string
		price    float64
		quantity int
	}{
		{"p1", 10, 5},
		{"p2", 25.5, 20},
	} {
		p, err := domainProduct.New(seed.id, seed.id, seed.price, seed.quantity)
		require.NoError(t, err)
		repo.Seed(p)
	}

	testCases := map[string]struct {
		ids         []string
		expectedIDs []string
	}{
		"all present":          {ids: []string{"p1", "p2"}, expectedIDs: []string{"p1", "p2"}},
		"missing ids omitted":  {ids: []string{"p1", "missing"}, expectedIDs: []string{"p1"}},
		"duplicates collapsed": {ids: []string{"p1", "p1"}, expectedIDs: []string{"p1"}},
		"nothing matches":      {ids: []string{"x", "y"}, expectedIDs: []string{}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			found, err := repo.FindAllByID(ctx, tc.ids)
			require.NoError(t, err)

			ids := make([]string, 0, len(found))
			for _, p := range found {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	p, err := domainProduct.New("p1", "Keyboard", 10, 5)
	require.NoError(t, err)
	repo.Seed(p)

	err = repo.UpdateQuantity(ctx, []domainProduct.QuantityUpdate{{ID: "p1", Quantity: 2}})
	require.NoError(t, err)

	found, err := repo.FindAllByID(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Quantity)

	err = repo.UpdateQuantity(ctx, []domainProduct.QuantityUpdate{{ID: "ghost", Quantity: 1}})
	assert.ErrorIs(t, err, domainProduct.ErrNotFound)
}

func TestOrderRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	c, err := domainCustomer.New("c1", "Demo Customer", "demo@gostore.dev")
	require.NoError(t, err)

	created, err := repo.Create(ctx, domainOrder.CreateParams{
		Customer: c,
		Products: []domainOrder.OrderProduct{
			{ProductID: "p1", Quantity: 3, Price: 10},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Products, stored.Products)

	// Mutating the returned aggregate must not leak into the store.
	created.Products[0].Quantity = 99
	stored, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Products[0].Quantity)

	_, err = repo.Create(ctx, domainOrder.CreateParams{})
	assert.Error(t, err)
}
