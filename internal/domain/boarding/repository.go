package boarding

import (
	"context"
	"time"

	"pet-boarding/internal/domain/pets"
)

// Repository persists stays and grooming charges. Occupancy is always
// derived from open stay rows at read time; implementations must not keep
// an authoritative counter anywhere.
type Repository interface {
	// CreateStayGated atomically checks the current occupancy for the
	// species against limit and inserts the stay (and charge, when
	// non-nil) only if a space is free, returning ErrNoSpace otherwise.
	// The check and the inserts are a single atomic unit: two concurrent
	// admissions for the same species must serialize here.
	CreateStayGated(ctx context.Context, species pets.Species, limit int, stay Stay, charge *GroomingCharge) error

	// OccupancyBySpecies counts open stays joined to the pet species.
	OccupancyBySpecies(ctx context.Context) (map[pets.Species]int, error)

	// GetStayDetail loads a stay with pet, owner and grooming charge.
	// Returns ErrNotFound for unknown ids.
	GetStayDetail(ctx context.Context, stayID string) (StayDetail, error)

	// CloseStay sets the check-out date iff the stay is still open (a
	// conditional single-row update). ErrNotFound for unknown ids,
	// ErrAlreadyClosed when a check-out date is already set.
	CloseStay(ctx context.Context, stayID string, checkOut time.Time) error

	// StaysCheckedInBetween returns details for stays, open or closed,
	// whose check-in date falls in [from, to].
	StaysCheckedInBetween(ctx context.Context, from, to time.Time) ([]StayDetail, error)

	// OpenStays returns details for every currently open stay.
	OpenStays(ctx context.Context) ([]StayDetail, error)
}
