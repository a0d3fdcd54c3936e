package boarding

import (
	"time"

	"pet-boarding/internal/domain/pets"
)

// Fixed facility capacity. Not configurable at runtime on purpose: the
// buildings don't grow when an env var changes.
const (
	TotalDogSpaces = 30
	TotalCatSpaces = 12
)

// Capacity returns the number of physical spaces for a species.
func Capacity(sp pets.Species) int {
	switch sp {
	case pets.SpeciesDog:
		return TotalDogSpaces
	case pets.SpeciesCat:
		return TotalCatSpaces
	default:
		return 0
	}
}

// Stay is one boarding record. It is created open, closed exactly once,
// and never otherwise mutated; AmountDueCents is fixed at check-in and
// checkout must not recompute it.
type Stay struct {
	ID    string
	PetID string

	CheckIn  time.Time  // date, UTC midnight
	CheckOut *time.Time // nil while the stay is open

	Days              int
	AmountDueCents    int64
	GroomingRequested bool
}

// Open reports whether the pet is still occupying a space.
func (s Stay) Open() bool { return s.CheckOut == nil }

// GroomingCharge is created at check-in iff the eligibility rule held,
// and is immutable afterward. StayID goes empty if the stay is later
// purged (set-null), the charge itself survives.
type GroomingCharge struct {
	ID     string
	StayID string
	PetID  string

	ServiceDate time.Time
	ServiceType string
	PriceCents  int64
}

// StayDetail is a stay joined with its pet, owner and optional grooming
// charge, as storage hands it back for checkout, invoices and reports.
type StayDetail struct {
	Stay Stay

	PetName   string
	Species   pets.Species
	Breed     string
	WeightLbs float64

	OwnerFirstName string
	OwnerLastName  string
	OwnerPhone     string
	OwnerEmail     string

	Grooming *GroomingCharge
}
