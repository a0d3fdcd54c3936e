package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"pet-boarding/internal/domain/pets"
)

type petRepo struct {
	*Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	// sqlite reports FK failures as a generic constraint error, so the
	// owner gets checked up front instead of decoded from the insert
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = ?)`, p.CustomerID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pets.ErrOwnerNotFound
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, customer_id,
			name, species, age_years, breed, weight_lbs,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?)
	`,
		p.ID,
		p.CustomerID,
		p.Name,
		string(p.Species),
		p.AgeYears,
		p.Breed,
		p.WeightLbs,
		encodeTime(p.CreatedAt),
		encodeTime(p.UpdatedAt),
	)
	return err
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, customer_id,
			name, species, age_years, breed, weight_lbs,
			created_at, updated_at
		FROM pets
		WHERE id = ?
	`, id)

	p, err := scanPet(row)
	if err == sql.ErrNoRows {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = ?, age_years = ?, breed = ?, weight_lbs = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Name,
		p.AgeYears,
		p.Breed,
		p.WeightLbs,
		encodeTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *petRepo) ListByCustomer(ctx context.Context, customerID string) ([]pets.Pet, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, customer_id,
			name, species, age_years, breed, weight_lbs,
			created_at, updated_at
		FROM pets
		WHERE customer_id = ?
		ORDER BY created_at ASC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(sc interface{ Scan(dest ...any) error }) (pets.Pet, error) {
	var p pets.Pet
	var species, createdAt, updatedAt string
	if err := sc.Scan(
		&p.ID,
		&p.CustomerID,
		&p.Name,
		&species,
		&p.AgeYears,
		&p.Breed,
		&p.WeightLbs,
		&createdAt,
		&updatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Species = pets.Species(species)

	var err error
	if p.CreatedAt, err = decodeTime(createdAt); err != nil {
		return pets.Pet{}, err
	}
	if p.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}
