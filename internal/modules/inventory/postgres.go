package inventory

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

type postgresLedger struct{ db *sql.DB }

func NewPostgresLedger(db *sql.DB) Ledger { return &postgresLedger{db: db} }

// Reserve relies on the database applying "decrement if >= qty" as one
// conditional write, so two concurrent reservations can never overdraw.
func (l *postgresLedger) Reserve(ctx context.Context, productID uuid.UUID, qty int) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE products SET stock = stock - $1, updated_at=$2
		WHERE id=$3 AND stock >= $1`,
		qty, time.Now(), productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	// No row matched: product missing, or not enough stock.
	var available int
	err = l.db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id=$1`, productID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("product", productID.String())
	}
	if err != nil {
		return err
	}
	return apperr.InsufficientStock(productID.String(), qty, available)
}

func (l *postgresLedger) Release(ctx context.Context, productID uuid.UUID, qty int) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE products SET stock = stock + $1, updated_at=$2 WHERE id=$3`,
		qty, time.Now(), productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product", productID.String())
	}
	return nil
}
