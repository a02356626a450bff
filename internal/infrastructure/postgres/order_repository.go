package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mercadinho-dev/gostore/internal/domain/order"
)

// OrderRepository persists order aggregates across the orders and
// order_products tables.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, params domain.CreateParams) (*domain.Order, error) {
	if params.Customer == nil {
		return nil, fmt.Errorf("order repository: customer is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	order := &domain.Order{
		ID:        uuid.NewString(),
		Customer:  params.Customer,
		Products:  make([]domain.OrderProduct, len(params.Products)),
		CreatedAt: time.Now().UTC(),
	}
	copy(order.Products, params.Products)

	_, err = tx.Exec(ctx,
		"INSERT INTO orders (id, customer_id, created_at) VALUES ($1, $2, $3)",
		order.ID, params.Customer.ID, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, p := range order.Products {
		_, err = tx.Exec(ctx,
			"INSERT INTO order_products (id, order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)",
			uuid.NewString(), order.ID, p.ProductID, p.Quantity, p.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order product %s: %w", p.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}

	return order, nil
}
