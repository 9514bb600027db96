package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) (*Customer, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	GetByEmail(ctx context.Context, email string) (*Customer, error)

	List(ctx context.Context, limit int) ([]*Customer, error)

	Update(ctx context.Context, c *Customer) (*Customer, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Search filters by exact email and/or city; empty arguments are skipped.
	Search(ctx context.Context, email, city string) ([]*Customer, error)
}
