package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) TopSellingProducts(ctx context.Context, limit int) ([]*ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, COALESCE(SUM(oi.quantity),0) AS sold
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.id, p.name
		ORDER BY sold DESC, p.id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ProductSales
	for rows.Next() {
		ps := &ProductSales{}
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.QuantitySold); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (r *postgresRepo) RevenueSince(ctx context.Context, t time.Time) (*Revenue, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = 'COMPLETED' AND ordered_at >= $1`, t).Scan(&total)
	if err != nil {
		return nil, err
	}
	return &Revenue{Total: total}, nil
}

func (r *postgresRepo) OrdersPerCustomer(ctx context.Context) ([]*CustomerOrders, error) {
	return r.queryCustomerCounts(ctx, `
		SELECT c.id, c.name, COUNT(o.id) AS orders
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		GROUP BY c.id, c.name
		ORDER BY orders DESC, c.id ASC`)
}

func (r *postgresRepo) FrequentCustomers(ctx context.Context, min int) ([]*CustomerOrders, error) {
	return r.queryCustomerCounts(ctx, `
		SELECT c.id, c.name, COUNT(o.id) AS orders
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		GROUP BY c.id, c.name
		HAVING COUNT(o.id) >= $1
		ORDER BY orders DESC, c.id ASC`, min)
}

func (r *postgresRepo) queryCustomerCounts(ctx context.Context, query string, args ...interface{}) ([]*CustomerOrders, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CustomerOrders
	for rows.Next() {
		co := &CustomerOrders{}
		if err := rows.Scan(&co.CustomerID, &co.Name, &co.OrderCount); err != nil {
			return nil, err
		}
		out = append(out, co)
	}
	return out, rows.Err()
}
