// Package inventory guards the stock column of the product catalog. All
// stock movement driven by order workflows goes through the Ledger; no
// workflow code writes the field directly.
package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Ledger is the conditional decrement / unconditional increment contract
// protecting product stock from concurrent over-reservation.
type Ledger interface {
	// Reserve decrements stock by qty only if current stock >= qty.
	// Fails with apperr.ErrInsufficientStock otherwise, and with
	// apperr.ErrNotFound when the product does not exist. The check and
	// the write are a single atomic step per product.
	Reserve(ctx context.Context, productID uuid.UUID, qty int) error

	// Release credits qty back to the product unconditionally. Used on
	// cancellation and on compensating rollback of a failed placement.
	Release(ctx context.Context, productID uuid.UUID, qty int) error
}
