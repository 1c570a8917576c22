package order

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

// NewPostgres returns a Postgres-backed order ledger.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Save(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (id, customer_id, total, shipping_address, status, payment_code, payment_ref, payment_message)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
RETURNING created_at
`
	res := order
	if err := tx.QueryRow(ctx, orderQ,
		order.ID,
		order.CustomerID,
		order.Total,
		order.ShippingAddress,
		string(order.Status),
		string(order.PaymentCode),
		order.PaymentRef,
		order.PaymentMessage,
	).Scan(&res.CreatedAt); err != nil {
		r.logger.Printf("order repo: save order id=%s error=%v", order.ID, err)
		return nil, err
	}

	const lineQ = `
INSERT INTO order_lines (order_id, sku, title, quantity, unit_price, total, customer_username, farmer_username)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	for i := range res.Lines {
		line := &res.Lines[i]
		line.OrderID = res.ID
		if _, err := tx.Exec(ctx, lineQ,
			line.OrderID,
			line.SKU,
			line.Title,
			line.Quantity,
			line.UnitPrice,
			line.Total(),
			line.CustomerUsername,
			line.FarmerUsername,
		); err != nil {
			r.logger.Printf("order repo: save line order_id=%s sku=%s error=%v", res.ID, line.SKU, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: saved order id=%s lines=%d status=%s", res.ID, len(res.Lines), res.Status)
	return &res, nil
}

const orderColumns = `id::text, customer_id::text, total, COALESCE(shipping_address, ''), status, COALESCE(payment_code, ''), COALESCE(payment_ref, ''), COALESCE(payment_message, ''), created_at`

func (r *postgresRepo) GetByID(ctx context.Context, orderID, customerID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND customer_id = $2
`
	var o domain.Order
	var status, paymentCode string
	err := r.pool.QueryRow(ctx, q, orderID, customerID).Scan(
		&o.ID,
		&o.CustomerID,
		&o.Total,
		&o.ShippingAddress,
		&status,
		&paymentCode,
		&o.PaymentRef,
		&o.PaymentMessage,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", orderID, err)
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.PaymentCode = domain.OutcomeCode(paymentCode)

	lines, err := r.fetchLines(ctx, `
SELECT order_id::text, sku, title, quantity, unit_price, customer_username, farmer_username
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC
`, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var status, paymentCode string
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total, &o.ShippingAddress, &status, &paymentCode, &o.PaymentRef, &o.PaymentMessage, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		o.PaymentCode = domain.OutcomeCode(paymentCode)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListLines(ctx context.Context) ([]domain.LineItem, error) {
	return r.fetchLines(ctx, `
SELECT order_id::text, sku, title, quantity, unit_price, customer_username, farmer_username
FROM order_lines
ORDER BY created_at ASC
`)
}

func (r *postgresRepo) ListLinesToFarmer(ctx context.Context, farmerUsername string) ([]domain.LineItem, error) {
	return r.fetchLines(ctx, `
SELECT order_id::text, sku, title, quantity, unit_price, customer_username, farmer_username
FROM order_lines
WHERE farmer_username = $1
ORDER BY created_at ASC
`, farmerUsername)
}

func (r *postgresRepo) fetchLines(ctx context.Context, q string, args ...interface{}) ([]domain.LineItem, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list lines error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.LineItem
	for rows.Next() {
		var l domain.LineItem
		if err := rows.Scan(&l.OrderID, &l.SKU, &l.Title, &l.Quantity, &l.UnitPrice, &l.CustomerUsername, &l.FarmerUsername); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
