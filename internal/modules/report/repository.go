package report

import (
	"context"
	"time"
)

// Repository runs the read-only aggregation queries. Reports scan committed
// records and carry no consistency obligations.
type Repository interface {
	TopSellingProducts(ctx context.Context, limit int) ([]*ProductSales, error)

	// RevenueSince sums completed-order totals from t onward.
	RevenueSince(ctx context.Context, t time.Time) (*Revenue, error)

	OrdersPerCustomer(ctx context.Context) ([]*CustomerOrders, error)

	// FrequentCustomers lists customers with at least min orders.
	FrequentCustomers(ctx context.Context, min int) ([]*CustomerOrders, error)
}
