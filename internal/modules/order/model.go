package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/modules/customer"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusCompleted OrderStatus = "COMPLETED"
)

// validTransitions defines the allowed status state machine. CANCELLED and
// COMPLETED are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:    {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// Order is a placed order with its line items. Total is computed once at
// placement and never recomputed.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Status     OrderStatus     `json:"status"`
	Total      decimal.Decimal `json:"total_amount"`
	OrderedAt  time.Time       `json:"ordered_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Items      []*OrderItem    `json:"items,omitempty"`
}

// OrderItem is a single line item within an order. UnitPrice is the product
// price captured at placement.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Details is the aggregate view returned to callers: the order with its
// items plus the referenced customer.
type Details struct {
	*Order
	Customer *customer.Customer `json:"customer,omitempty"`
}

// CartItem describes one requested line during placement.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
}
