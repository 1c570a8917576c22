package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homesteadhub/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Postgres-backed product repository.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `p.sku, p.title, COALESCE(p.description, ''), p.stock, p.unit_price, p.farmer_id::text, u.username, p.created_at`

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (sku, title, description, stock, unit_price, farmer_id)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
ON CONFLICT (sku) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    stock = EXCLUDED.stock,
    unit_price = EXCLUDED.unit_price
WHERE products.farmer_id = EXCLUDED.farmer_id
RETURNING sku, title, COALESCE(description, ''), stock, unit_price, farmer_id::text, created_at
`
	var res domain.Product
	err := r.pool.QueryRow(ctx, q,
		product.SKU,
		product.Title,
		product.Description,
		product.Stock,
		product.UnitPrice,
		product.FarmerID,
	).Scan(&res.SKU, &res.Title, &res.Description, &res.Stock, &res.UnitPrice, &res.FarmerID, &res.CreatedAt)
	if err != nil {
		// The guarded update matches nothing when the SKU already belongs to
		// a different farmer.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: upsert sku=%s error=%v", product.SKU, err)
		return nil, err
	}
	// The guard guarantees the stored row's farmer is the caller.
	res.FarmerUsername = product.FarmerUsername
	r.logger.Printf("product repo: upserted sku=%s stock=%d", res.SKU, res.Stock)
	return &res, nil
}

func (r *postgresRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
JOIN users u ON u.id = p.farmer_id
WHERE p.sku = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, sku).Scan(&p.SKU, &p.Title, &p.Description, &p.Stock, &p.UnitPrice, &p.FarmerID, &p.FarmerUsername, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get sku=%s error=%v", sku, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
JOIN users u ON u.id = p.farmer_id
ORDER BY p.sku ASC
`
	return r.fetchProducts(ctx, q)
}

func (r *postgresRepo) ListByFarmer(ctx context.Context, farmerID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
JOIN users u ON u.id = p.farmer_id
WHERE p.farmer_id = $1
ORDER BY p.sku ASC
`
	return r.fetchProducts(ctx, q, farmerID)
}

func (r *postgresRepo) UpdateStock(ctx context.Context, sku string, stock int) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET stock = $1 WHERE sku = $2`, stock, sku)
	if err != nil {
		r.logger.Printf("product repo: update stock sku=%s error=%v", sku, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUnknownProduct
	}
	return nil
}

func (r *postgresRepo) fetchProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.SKU, &p.Title, &p.Description, &p.Stock, &p.UnitPrice, &p.FarmerID, &p.FarmerUsername, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
