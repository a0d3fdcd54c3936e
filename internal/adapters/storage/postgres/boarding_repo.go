package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/pets"
)

type BoardingRepo struct {
	db *sql.DB
}

func NewBoardingRepo(db *sql.DB) *BoardingRepo {
	return &BoardingRepo{db: db}
}

// Advisory lock keyspace for the admission gate. One lock per species
// serializes concurrent check-ins against that pool; the lock is
// transaction-scoped, so it releases at commit or rollback.
const admissionLockClass = 2089

func speciesLockKey(sp pets.Species) int32 {
	switch sp {
	case pets.SpeciesDog:
		return 1
	case pets.SpeciesCat:
		return 2
	default:
		return 0
	}
}

// CreateStayGated checks occupancy and inserts the stay (plus charge)
// in one transaction, holding the species' advisory lock across both so
// two concurrent admissions cannot both see the last free space.
func (r *BoardingRepo) CreateStayGated(ctx context.Context, species pets.Species, limit int, stay boarding.Stay, charge *boarding.GroomingCharge) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, admissionLockClass, speciesLockKey(species)); err != nil {
		return err
	}

	var occupied int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM boarding_stays b
		JOIN pets p ON p.id = b.pet_id
		WHERE p.species = $1 AND b.check_out IS NULL
	`, species).Scan(&occupied)
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
		) VALUES ($1,$2,$3,NULL,$4,$5,$6)
	`,
		stay.ID,
		stay.PetID,
		stay.CheckIn,
		stay.Days,
		stay.AmountDueCents,
		stay.GroomingRequested,
	)
	if isForeignKeyViolation(err) {
		return pets.ErrNotFound
	}
	if err != nil {
		return err
	}

	if charge != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grooming_charges (
				id, stay_id, pet_id,
				service_date, service_type, price_cents
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			charge.ID,
			charge.StayID,
			charge.PetID,
			charge.ServiceDate,
			charge.ServiceType,
			charge.PriceCents,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *BoardingRepo) OccupancyBySpecies(ctx context.Context) (map[pets.Species]int, error) {
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
		var sp pets.Species
		var n int
		if err := rows.Scan(&sp, &n); err != nil {
			return nil, err
		}
		occ[sp] = n
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

func scanStayDetail(sc interface{ Scan(dest ...any) error }) (boarding.StayDetail, error) {
	var det boarding.StayDetail
	var checkOut sql.NullTime
	var gID, gStayID, gPetID, gType sql.NullString
	var gDate sql.NullTime
	var gPrice sql.NullInt64

	err := sc.Scan(
		&det.Stay.ID,
		&det.Stay.PetID,
		&det.Stay.CheckIn,
		&checkOut,
		&det.Stay.Days,
		&det.Stay.AmountDueCents,
		&det.Stay.GroomingRequested,
		&det.PetName,
		&det.Species,
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

	if checkOut.Valid {
		t := checkOut.Time
		det.Stay.CheckOut = &t
	}
	if gID.Valid {
		det.Grooming = &boarding.GroomingCharge{
			ID:          gID.String,
			StayID:      gStayID.String,
			PetID:       gPetID.String,
			ServiceDate: gDate.Time,
			ServiceType: gType.String,
			PriceCents:  gPrice.Int64,
		}
	}

	return det, nil
}

func (r *BoardingRepo) GetStayDetail(ctx context.Context, stayID string) (boarding.StayDetail, error) {
	row := r.db.QueryRowContext(ctx, stayDetailSelect+` WHERE b.id = $1`, stayID)

	det, err := scanStayDetail(row)
	if err == sql.ErrNoRows {
		return boarding.StayDetail{}, boarding.ErrNotFound
	}
	if err != nil {
		return boarding.StayDetail{}, err
	}
	return det, nil
}

// CloseStay is a conditional single-row update: only the open row
// matches, so a raced second checkout affects zero rows and gets
// ErrAlreadyClosed.
func (r *BoardingRepo) CloseStay(ctx context.Context, stayID string, checkOut time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE boarding_stays
		SET check_out = $2
		WHERE id = $1 AND check_out IS NULL
	`, stayID, checkOut)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM boarding_stays WHERE id = $1)`, stayID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return boarding.ErrAlreadyClosed
	}
	return boarding.ErrNotFound
}

func (r *BoardingRepo) StaysCheckedInBetween(ctx context.Context, from, to time.Time) ([]boarding.StayDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		stayDetailSelect+` WHERE b.check_in BETWEEN $1 AND $2 ORDER BY b.check_in DESC, b.id DESC`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

func (r *BoardingRepo) OpenStays(ctx context.Context) ([]boarding.StayDetail, error) {
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
