package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-boarding/internal/domain/customers"
)

type CustomersRepo struct {
	db *sql.DB
}

func NewCustomersRepo(db *sql.DB) *CustomersRepo {
	return &CustomersRepo{db: db}
}

func (r *CustomersRepo) Create(ctx context.Context, c customers.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, first_name, last_name, phone, email,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Email,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CustomersRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customers.Customer{}, customers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM customers
		WHERE id = $1
	`, id)

	var c customers.Customer
	if err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return customers.Customer{}, customers.ErrNotFound
		}
		return customers.Customer{}, err
	}

	return c, nil
}

func (r *CustomersRepo) Update(ctx context.Context, c customers.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET
			first_name = $2,
			last_name = $3,
			phone = $4,
			email = $5,
			updated_at = $6
		WHERE id = $1
	`,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Email,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customers.ErrNotFound
	}
	return nil
}

// Delete removes the customer row; pets, stays and grooming charges go
// with it through the schema's ON DELETE rules.
func (r *CustomersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customers.ErrNotFound
	}
	return nil
}

func (r *CustomersRepo) List(ctx context.Context) ([]customers.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM customers
		ORDER BY lower(last_name), lower(first_name)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customers.Customer, 0)
	for rows.Next() {
		var c customers.Customer
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Phone,
			&c.Email,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}
