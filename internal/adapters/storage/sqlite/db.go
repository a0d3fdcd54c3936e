// Package sqlite backs the facility with an embedded database file,
// for single-process deployments that want persistence without a
// Postgres server.
package sqlite

import (
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/customers"
	"pet-boarding/internal/domain/pets"
)

// Store owns the database handle plus the admission mutex: sqlite has
// no advisory locks, so the capacity check and the stay insert
// serialize in-process instead.
type Store struct {
	db        *sql.DB
	admission sync.Mutex
}

func Open(path string) (*Store, error) {
	if path == "" {
		path = "pet-boarding.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// the driver is in-process; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Customers() customers.Repository { return &customerRepo{s} }
func (s *Store) Pets() pets.Repository           { return &petRepo{s} }
func (s *Store) Boarding() boarding.Repository   { return &boardingRepo{s} }

func ensureSchema(db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS customers (
			id          TEXT PRIMARY KEY,
			first_name  TEXT NOT NULL,
			last_name   TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL DEFAULT '',
			email       TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pets (
			id           TEXT PRIMARY KEY,
			customer_id  TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			name         TEXT NOT NULL,
			species      TEXT NOT NULL,
			age_years    REAL NOT NULL,
			breed        TEXT NOT NULL DEFAULT '',
			weight_lbs   REAL NOT NULL,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS boarding_stays (
			id                 TEXT PRIMARY KEY,
			pet_id             TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			check_in           TEXT NOT NULL,
			check_out          TEXT,
			days               INTEGER NOT NULL,
			amount_due_cents   INTEGER NOT NULL,
			grooming_requested INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS grooming_charges (
			id           TEXT PRIMARY KEY,
			stay_id      TEXT REFERENCES boarding_stays(id) ON DELETE SET NULL,
			pet_id       TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			service_date TEXT NOT NULL,
			service_type TEXT NOT NULL,
			price_cents  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pets_customer ON pets(customer_id);
		CREATE INDEX IF NOT EXISTS idx_stays_pet ON boarding_stays(pet_id);
		CREATE INDEX IF NOT EXISTS idx_charges_stay ON grooming_charges(stay_id);
	`
	_, err := db.Exec(ddl)
	return err
}

// Dates and timestamps live as text: dates as 2006-01-02, timestamps
// as RFC 3339. Keeps the file greppable and the driver out of time
// conversion business.
const dateLayout = "2006-01-02"

func encodeDate(t time.Time) string { return t.UTC().Format(dateLayout) }

func decodeDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
