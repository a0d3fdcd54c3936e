package pets

import (
	"strings"
	"time"
)

// Species the facility boards. Each species has its own capacity pool and
// per-day boarding rate; anything else is rejected at the door.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// ParseSpecies normalizes free-text input ("Dog", " CAT ") to a Species.
func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog, true
	case SpeciesCat:
		return SpeciesCat, true
	default:
		return "", false
	}
}

// Pet belongs to exactly one customer (id reference, cascading delete).
type Pet struct {
	ID         string
	CustomerID string

	Name      string
	Species   Species
	AgeYears  float64
	Breed     string
	WeightLbs float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
