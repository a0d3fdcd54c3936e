package boarding

import "pet-boarding/internal/domain/pets"

// Per-day boarding rates, in cents.
const (
	dogDailyRateCents int64 = 30_00
	catDailyRateCents int64 = 25_00
)

// Grooming add-on rules: dogs only, staying at least MinGroomingDays,
// weighing at least MinGroomingWeightLbs.
const (
	MinGroomingDays      = 2
	MinGroomingWeightLbs = 2.0
)

// RateCents returns the per-day boarding rate for a species, 0 for
// anything the facility does not board.
func RateCents(sp pets.Species) int64 {
	switch sp {
	case pets.SpeciesDog:
		return dogDailyRateCents
	case pets.SpeciesCat:
		return catDailyRateCents
	default:
		return 0
	}
}

// GroomingTier is a weight-banded price bracket for the dog-only grooming
// add-on.
type GroomingTier struct {
	Name       string
	MinLbs     float64
	MaxLbs     float64 // 0 = open-ended
	PriceCents int64
}

// Tiers ordered smallest to largest; a weight belongs to the first tier
// whose upper bound it does not exceed. Bounds are inclusive, so 20.5 lbs
// still lands in Medium rather than falling between bands.
var groomingTiers = []GroomingTier{
	{Name: "Small", MinLbs: 2, MaxLbs: 20, PriceCents: 50_00},
	{Name: "Medium", MinLbs: 21, MaxLbs: 50, PriceCents: 70_00},
	{Name: "Large", MinLbs: 51, MaxLbs: 100, PriceCents: 90_00},
	{Name: "Extra Large", MinLbs: 101, MaxLbs: 0, PriceCents: 110_00},
}

// GroomingTierFor maps a dog's weight to its price tier. Dogs under
// MinGroomingWeightLbs have no tier.
func GroomingTierFor(weightLbs float64) (GroomingTier, bool) {
	if weightLbs < MinGroomingWeightLbs {
		return GroomingTier{}, false
	}
	for _, t := range groomingTiers {
		if t.MaxLbs == 0 || weightLbs <= t.MaxLbs {
			return t, true
		}
	}
	return GroomingTier{}, false
}

// GroomingVerdict says whether a grooming request can be honored and, when
// it cannot, which eligibility condition failed.
type GroomingVerdict int

const (
	GroomingEligible GroomingVerdict = iota
	GroomingWrongSpecies
	GroomingStayTooShort
	GroomingUnderweight
)

// EvaluateGrooming applies the eligibility rule to a requested add-on.
func EvaluateGrooming(sp pets.Species, days int, weightLbs float64) GroomingVerdict {
	if sp != pets.SpeciesDog {
		return GroomingWrongSpecies
	}
	if days < MinGroomingDays {
		return GroomingStayTooShort
	}
	if weightLbs < MinGroomingWeightLbs {
		return GroomingUnderweight
	}
	return GroomingEligible
}

// Quote is the price breakdown fixed at check-in time.
type Quote struct {
	BoardingCents int64
	GroomingCents int64
	TotalCents    int64

	// Tier is set only when GroomingCents > 0.
	Tier GroomingTier

	// Verdict explains a zero GroomingCents on a requested add-on.
	Verdict GroomingVerdict
}

// ComputeTotal prices a stay: per-day rate times days, plus the weight
// tier price when grooming was requested and the pet is eligible. Pure and
// deterministic; checkout never calls it again.
func ComputeTotal(sp pets.Species, days int, groomingRequested bool, weightLbs float64) Quote {
	q := Quote{
		BoardingCents: RateCents(sp) * int64(days),
		Verdict:       GroomingEligible,
	}

	if groomingRequested {
		q.Verdict = EvaluateGrooming(sp, days, weightLbs)
		if q.Verdict == GroomingEligible {
			if tier, ok := GroomingTierFor(weightLbs); ok {
				q.Tier = tier
				q.GroomingCents = tier.PriceCents
			}
		}
	}

	q.TotalCents = q.BoardingCents + q.GroomingCents
	return q
}
