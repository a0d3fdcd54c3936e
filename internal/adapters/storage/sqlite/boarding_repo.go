package sqlite

import (
	"context"
	"database/sql"
	"time"

	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/pets"
)

type boardingRepo struct {
	*Store
}

// CreateStayGated serializes admissions under the store mutex, then
// runs the occupancy check and the inserts in one transaction.
func (r *boardingRepo) CreateStayGated(ctx context.Context, species pets.Species, limit int, stay boarding.Stay, charge *boarding.GroomingCharge) error {
	r.admission.Lock()
	defer r.admission.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var occupied int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM boarding_stays b
		JOIN pets p ON p.id = b.pet_id
		WHERE p.species = ? AND b.check_out IS NULL
	`, string(species)).Scan(&occupied)
	if err != nil {
		return err
	}
	if occupied >= limit {
		return boarding.ErrNoSpace
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO boarding_stays (
			id, pet_id, check_in, check_out,
			days, amount_due_cents, grooming_requested
		) VALUES (?,?,?,NULL,?,?,?)
	`,
		stay.ID,
		stay.PetID,
		encodeDate(stay.CheckIn),
		stay.Days,
		stay.AmountDueCents,
		stay.GroomingRequested,
	)
	if err != nil {
		return err
	}

	if charge != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grooming_charges (
				id, stay_id, pet_id,
				service_date, service_type, price_cents
			) VALUES (?,?,?,?,?,?)
		`,
			charge.ID,
			charge.StayID,
			charge.PetID,
			encodeDate(charge.ServiceDate),
			charge.ServiceType,
			charge.PriceCents,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *boardingRepo) OccupancyBySpecies(ctx context.Context) (map[pets.Species]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.species, COUNT(*)
		FROM boarding_stays b
		JOIN pets p ON p.id = b.pet_id
		WHERE b.check_out IS NULL
		GROUP BY p.species
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occ := make(map[pets.Species]int)
	for rows.Next() {
		var sp string
		var n int
		if err := rows.Scan(&sp, &n); err != nil {
			return nil, err
		}
		occ[pets.Species(sp)] = n
	}

	return occ, rows.Err()
}

const stayDetailSelect = `
	SELECT
		b.id, b.pet_id, b.check_in, b.check_out,
		b.days, b.amount_due_cents, b.grooming_requested,
		p.name, p.species, p.breed, p.weight_lbs,
		c.first_name, c.last_name, c.phone, c.email,
		g.id, g.stay_id, g.pet_id, g.service_date, g.service_type, g.price_cents
	FROM boarding_stays b
	JOIN pets p ON p.id = b.pet_id
	JOIN customers c ON c.id = p.customer_id
	LEFT JOIN grooming_charges g ON g.stay_id = b.id
`

func (r *boardingRepo) GetStayDetail(ctx context.Context, stayID string) (boarding.StayDetail, error) {
	row := r.db.QueryRowContext(ctx, stayDetailSelect+` WHERE b.id = ?`, stayID)

	det, err := scanStayDetail(row)
	if err == sql.ErrNoRows {
		return boarding.StayDetail{}, boarding.ErrNotFound
	}
	if err != nil {
		return boarding.StayDetail{}, err
	}
	return det, nil
}

func (r *boardingRepo) CloseStay(ctx context.Context, stayID string, checkOut time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE boarding_stays
		SET check_out = ?
		WHERE id = ? AND check_out IS NULL
	`, encodeDate(checkOut), stayID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM boarding_stays WHERE id = ?)`, stayID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return boarding.ErrAlreadyClosed
	}
	return boarding.ErrNotFound
}

func (r *boardingRepo) StaysCheckedInBetween(ctx context.Context, from, to time.Time) ([]boarding.StayDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		stayDetailSelect+` WHERE b.check_in BETWEEN ? AND ? ORDER BY b.check_in DESC, b.id DESC`,
		encodeDate(from), encodeDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

func (r *boardingRepo) OpenStays(ctx context.Context) ([]boarding.StayDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		stayDetailSelect+` WHERE b.check_out IS NULL ORDER BY b.check_in DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

func collectDetails(rows *sql.Rows) ([]boarding.StayDetail, error) {
	out := make([]boarding.StayDetail, 0)
	for rows.Next() {
		det, err := scanStayDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, det)
	}
	return out, rows.Err()
}

func scanStayDetail(sc interface{ Scan(dest ...any) error }) (boarding.StayDetail, error) {
	var det boarding.StayDetail
	var checkIn, species string
	var checkOut sql.NullString
	var gID, gStayID, gPetID, gDate, gType sql.NullString
	var gPrice sql.NullInt64

	err := sc.Scan(
		&det.Stay.ID,
		&det.Stay.PetID,
		&checkIn,
		&checkOut,
		&det.Stay.Days,
		&det.Stay.AmountDueCents,
		&det.Stay.GroomingRequested,
		&det.PetName,
		&species,
		&det.Breed,
		&det.WeightLbs,
		&det.OwnerFirstName,
		&det.OwnerLastName,
		&det.OwnerPhone,
		&det.OwnerEmail,
		&gID,
		&gStayID,
		&gPetID,
		&gDate,
		&gType,
		&gPrice,
	)
	if err != nil {
		return boarding.StayDetail{}, err
	}

	det.Species = pets.Species(species)
	if det.Stay.CheckIn, err = decodeDate(checkIn); err != nil {
		return boarding.StayDetail{}, err
	}
	if checkOut.Valid {
		t, err := decodeDate(checkOut.String)
		if err != nil {
			return boarding.StayDetail{}, err
		}
		det.Stay.CheckOut = &t
	}

	if gID.Valid {
		serviceDate, err := decodeDate(gDate.String)
		if err != nil {
			return boarding.StayDetail{}, err
		}
		det.Grooming = &boarding.GroomingCharge{
			ID:          gID.String,
			StayID:      gStayID.String,
			PetID:       gPetID.String,
			ServiceDate: serviceDate,
			ServiceType: gType.String,
			PriceCents:  gPrice.Int64,
		}
	}

	return det, nil
}
