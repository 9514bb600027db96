package customer

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

const selectSQL = `SELECT id, name, email, phone, city, created_at, updated_at FROM customers`

func (r *postgresRepo) Create(ctx context.Context, c *Customer) (*Customer, error) {
	c.ID = uuid.New()
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, city, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Email, nilIfEmpty(c.Phone), nilIfEmpty(c.City), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE id=$1`, id), id.String())
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE email=$1`, email), email)
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		selectSQL+` ORDER BY created_at ASC, id ASC LIMIT `+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) (*Customer, error) {
	c.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$1, phone=$2, city=$3, updated_at=$4 WHERE id=$5`,
		c.Name, nilIfEmpty(c.Phone), nilIfEmpty(c.City), c.UpdatedAt, c.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("customer", c.ID.String())
	}
	return c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("customer", id.String())
	}
	return nil
}

func (r *postgresRepo) Search(ctx context.Context, email, city string) ([]*Customer, error) {
	query := selectSQL + ` WHERE 1=1`
	args := []interface{}{}
	if email != "" {
		args = append(args, email)
		query += ` AND email=$` + strconv.Itoa(len(args))
	}
	if city != "" {
		args = append(args, city)
		query += ` AND city=$` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

func (r *postgresRepo) scan(row *sql.Row, ref string) (*Customer, error) {
	c := &Customer{}
	var phone, city sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &city, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("customer", ref)
	}
	if err != nil {
		return nil, err
	}
	c.Phone, c.City = phone.String, city.String
	return c, nil
}

func (r *postgresRepo) scanRows(rows *sql.Rows) ([]*Customer, error) {
	var customers []*Customer
	for rows.Next() {
		c := &Customer{}
		var phone, city sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &city, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Phone, c.City = phone.String, city.String
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
