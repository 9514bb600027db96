package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSales is one row of the top-selling-products report.
type ProductSales struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	QuantitySold int       `json:"quantity_sold"`
}

// CustomerOrders is one row of the orders-per-customer report.
type CustomerOrders struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	OrderCount int       `json:"order_count"`
}

// Revenue is the total over completed orders in a period.
type Revenue struct {
	Total decimal.Decimal `json:"total"`
}
