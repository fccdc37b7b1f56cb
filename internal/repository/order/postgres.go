package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stylehub/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQuery = `
INSERT INTO orders (id, number, session_id, status, payment_method, coupon_code,
                    subtotal, discount, shipping, total,
                    ship_first_name, ship_last_name, ship_email, ship_phone,
                    ship_street, ship_city, ship_state, ship_zip_code, ship_country)
VALUES ($1::uuid, $2, $3, $4, $5, NULLIF($6, ''),
        $7, $8, $9, $10,
        $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING created_at
`
	addr := o.ShippingAddress
	if err := tx.QueryRow(ctx, orderQuery,
		o.ID, o.Number, o.SessionID, o.Status, o.PaymentMethod, o.CouponCode,
		o.Subtotal, o.Discount, o.Shipping, o.Total,
		addr.FirstName, addr.LastName, addr.Email, addr.Phone,
		addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country,
	).Scan(&o.CreatedAt); err != nil {
		r.logger.Printf("order repo: create number=%s error=%v", o.Number, err)
		return nil, err
	}

	const lineQuery = `
INSERT INTO order_lines (id, order_id, product_id, variant_sku, product_name, color, size, quantity, unit_price, line_total)
VALUES ($1::uuid, $2::uuid, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
`
	for _, line := range o.Lines {
		if _, err := tx.Exec(ctx, lineQuery,
			line.ID, o.ID, line.ProductID, line.VariantSKU, line.ProductName,
			line.Color, line.Size, line.Quantity, line.UnitPrice, line.LineTotal,
		); err != nil {
			r.logger.Printf("order repo: create line sku=%s error=%v", line.VariantSKU, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order number=%s lines=%d", o.Number, len(o.Lines))
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, sessionID, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, number, session_id, status, payment_method, COALESCE(coupon_code, ''),
       subtotal, discount, shipping, total,
       ship_first_name, ship_last_name, ship_email, ship_phone,
       ship_street, ship_city, ship_state, ship_zip_code, ship_country, created_at
FROM orders
WHERE session_id = $1 AND id = $2
`
	o, err := r.fetchOrder(ctx, q, sessionID, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	const q = `
SELECT id::text
FROM orders
WHERE session_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.GetByID(ctx, sessionID, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *postgresRepo) fetchOrder(ctx context.Context, query string, args ...interface{}) (*domain.Order, error) {
	var o domain.Order
	addr := &o.ShippingAddress
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.Number, &o.SessionID, &o.Status, &o.PaymentMethod, &o.CouponCode,
		&o.Subtotal, &o.Discount, &o.Shipping, &o.Total,
		&addr.FirstName, &addr.LastName, &addr.Email, &addr.Phone,
		&addr.Street, &addr.City, &addr.State, &addr.ZipCode, &addr.Country, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT id::text, product_id, variant_sku, product_name, COALESCE(color, ''), COALESCE(size, ''), quantity, unit_price, line_total
FROM order_lines
WHERE order_id = $1
ORDER BY product_name, variant_sku
`
	rows, err := r.pool.Query(ctx, linesQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.ProductID, &line.VariantSKU, &line.ProductName,
			&line.Color, &line.Size, &line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}
