package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const selectSQL = `SELECT id, name, sku, price, stock, category, created_at, updated_at FROM products`

func (r *postgresRepo) Create(ctx context.Context, p *Product) (*Product, error) {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, sku, price, stock, category, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.SKU, p.Price, p.Stock, nilIfEmpty(p.Category), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE id=$1`, id), id.String())
}

func (r *postgresRepo) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE sku=$1`, sku), sku)
}

func (r *postgresRepo) List(ctx context.Context, limit int, category string) ([]*Product, error) {
	query := selectSQL
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at ASC, id ASC LIMIT ` + strconv.Itoa(limit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		var category sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock,
			&category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Category = category.String
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) (*Product, error) {
	p.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET name=$1, price=$2, category=$3, updated_at=$4 WHERE id=$5`,
		p.Name, p.Price, nilIfEmpty(p.Category), p.UpdatedAt, p.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("product", p.ID.String())
	}
	return p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product", id.String())
	}
	return nil
}

func (r *postgresRepo) Restock(ctx context.Context, id uuid.UUID, delta int) (*Product, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = stock + $1, updated_at=$2 WHERE id=$3`,
		delta, time.Now(), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("product", id.String())
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) scan(row *sql.Row, ref string) (*Product, error) {
	p := &Product{}
	var category sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock,
		&category, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product", ref)
	}
	if err != nil {
		return nil, err
	}
	p.Category = category.String
	return p, nil
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
