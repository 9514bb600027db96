package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const selectSQL = `SELECT id, order_id, amount, method, status, created_at, updated_at FROM payments`

// CreatePending relies on the unique constraint on order_id: ON CONFLICT DO
// NOTHING makes create-if-absent atomic under concurrent callers.
func (r *postgresRepo) CreatePending(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Payment, error) {
	p := &Payment{
		ID:      uuid.New(),
		OrderID: orderID,
		Amount:  amount,
		Status:  StatusPending,
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, method, status, created_at, updated_at)
		VALUES ($1,$2,$3,NULL,$4,$5,$6)
		ON CONFLICT (order_id) DO NOTHING`,
		p.ID, p.OrderID, p.Amount, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.Conflict("payment", "payment already exists for order "+orderID.String())
	}
	return p, nil
}

func (r *postgresRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*Payment, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE order_id=$1`, orderID), orderID.String())
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, method *Method) (*Payment, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status=$1, method=COALESCE($2, method), updated_at=$3 WHERE id=$4`,
		status, method, time.Now(), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("payment", id.String())
	}
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE id=$1`, id), id.String())
}

func (r *postgresRepo) scan(row *sql.Row, ref string) (*Payment, error) {
	p := &Payment{}
	var method sql.NullString
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &method, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("payment", ref)
	}
	if err != nil {
		return nil, err
	}
	if method.Valid {
		m := Method(method.String)
		p.Method = &m
	}
	return p, nil
}
