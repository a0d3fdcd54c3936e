package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"pet-boarding/internal/domain/customers"
)

type customerRepo struct {
	*Store
}

func (r *customerRepo) Create(ctx context.Context, c customers.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, first_name, last_name, phone, email,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?)
	`,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Email,
		encodeTime(c.CreatedAt),
		encodeTime(c.UpdatedAt),
	)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customers.Customer{}, customers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM customers
		WHERE id = ?
	`, id)

	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return customers.Customer{}, customers.ErrNotFound
	}
	return c, err
}

func (r *customerRepo) Update(ctx context.Context, c customers.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET first_name = ?, last_name = ?, phone = ?, email = ?, updated_at = ?
		WHERE id = ?
	`,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Email,
		encodeTime(c.UpdatedAt),
		c.ID,
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

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customers.ErrNotFound
	}
	return nil
}

func (r *customerRepo) List(ctx context.Context) ([]customers.Customer, error) {
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
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func scanCustomer(sc interface{ Scan(dest ...any) error }) (customers.Customer, error) {
	var c customers.Customer
	var createdAt, updatedAt string
	if err := sc.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Email,
		&createdAt,
		&updatedAt,
	); err != nil {
		return customers.Customer{}, err
	}

	var err error
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return customers.Customer{}, err
	}
	if c.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return customers.Customer{}, err
	}
	return c, nil
}
