package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for catalog products. Create assigns the
// product id and returns the stored record; no re-fetch round trip.
type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// List returns products in insertion order, optionally filtered by category.
	List(ctx context.Context, limit int, category string) ([]*Product, error)

	// Update writes name, price, and category. It never touches stock.
	Update(ctx context.Context, p *Product) (*Product, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Restock atomically adds delta to the product's stock.
	Restock(ctx context.Context, id uuid.UUID, delta int) (*Product, error)
}
