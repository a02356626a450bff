package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mercadinho-dev/gostore/internal/domain/product"
)

// ProductRepository provides database operations for inventory records.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	query := "SELECT id, name, price, quantity, updated_at FROM products WHERE id = ANY($1)"

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	return out, nil
}

func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domain.QuantityUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(
			"UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1",
			u.ID, u.Quantity,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for _, u := range updates {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("update quantity for product %s: %w", u.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update quantity for product %s: %w", u.ID, domain.ErrNotFound)
		}
	}

	return nil
}
