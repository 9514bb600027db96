package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines data access for payments.
type Repository interface {
	// CreatePending creates the single PENDING payment for an order.
	// Create-if-absent is atomic per order: a second call for the same
	// order fails with apperr.ErrConflict.
	CreatePending(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Payment, error)

	GetByOrder(ctx context.Context, orderID uuid.UUID) (*Payment, error)

	// UpdateStatus persists the status (and method, when non-nil) and
	// returns the refreshed row.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, method *Method) (*Payment, error)
}
