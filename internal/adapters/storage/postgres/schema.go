package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the facility tables when they do not exist yet.
// Deleting a customer cascades to pets and stays; deleting a stay keeps
// its grooming charge for the books, with the stay reference nulled.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS customers (
			id          TEXT PRIMARY KEY,
			first_name  TEXT NOT NULL,
			last_name   TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL DEFAULT '',
			email       TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pets (
			id           TEXT PRIMARY KEY,
			customer_id  TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			name         TEXT NOT NULL,
			species      TEXT NOT NULL,
			age_years    DOUBLE PRECISION NOT NULL,
			breed        TEXT NOT NULL DEFAULT '',
			weight_lbs   DOUBLE PRECISION NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS boarding_stays (
			id                 TEXT PRIMARY KEY,
			pet_id             TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			check_in           DATE NOT NULL,
			check_out          DATE,
			days               INTEGER NOT NULL,
			amount_due_cents   BIGINT NOT NULL,
			grooming_requested BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS grooming_charges (
			id           TEXT PRIMARY KEY,
			stay_id      TEXT REFERENCES boarding_stays(id) ON DELETE SET NULL,
			pet_id       TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			service_date DATE NOT NULL,
			service_type TEXT NOT NULL,
			price_cents  BIGINT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pets_customer ON pets(customer_id);
		CREATE INDEX IF NOT EXISTS idx_stays_pet ON boarding_stays(pet_id);
		CREATE INDEX IF NOT EXISTS idx_stays_open ON boarding_stays(pet_id) WHERE check_out IS NULL;
		CREATE INDEX IF NOT EXISTS idx_charges_stay ON grooming_charges(stay_id);
	`
	_, err := db.ExecContext(ctx, ddl)
	return err
}
