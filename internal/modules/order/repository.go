package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders and their items.
type Repository interface {
	// CreateOrder persists the order and all its items as a single unit,
	// assigns identifiers, and returns the created record.
	CreateOrder(ctx context.Context, o *Order) (*Order, error)

	// GetOrderByID retrieves an order joined with its items.
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListByCustomer returns a customer's orders in insertion order.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error)

	// UpdateStatus persists the new status and returns the refreshed
	// aggregate. It does not enforce the state machine; the service does.
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
}
