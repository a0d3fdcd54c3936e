package boarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-boarding/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSpace is the admission gate: occupancy for the species already
	// equals its capacity.
	ErrNoSpace = errors.New("no spaces available")

	ErrNotFound      = errors.New("boarding record not found")
	ErrAlreadyClosed = errors.New("stay already checked out")
)

// Stay durations accepted at check-in.
const (
	MinStayDays = 1
	MaxStayDays = 365
)

const groomingServiceType = "Full Grooming"

// Service is the boarding engine: admission-controlled check-ins, checkout,
// invoices and reports. All occupancy facts come from the repository per
// call; the service holds no counters.
type Service struct {
	repo Repository
	pets *pets.Service
	now  func() time.Time
}

func NewService(repo Repository, petsSvc *pets.Service) *Service {
	return &Service{
		repo: repo,
		pets: petsSvc,
		now:  time.Now,
	}
}

type CheckInInput struct {
	PetID             string
	Days              int
	GroomingRequested bool
}

type CheckInResult struct {
	StayID  string
	Message string

	BoardingCents int64
	GroomingCents int64
	TotalCents    int64
}

// CheckIn admits a pet for boarding. Validation and pricing happen before
// any write; the capacity check and the stay insert are one atomic unit
// inside the repository, so concurrent check-ins cannot overrun a species
// pool. The amount due is fixed here and never recomputed.
func (s *Service) CheckIn(ctx context.Context, in CheckInInput) (CheckInResult, error) {
	petID := strings.TrimSpace(in.PetID)
	if petID == "" {
		return CheckInResult{}, ErrInvalidInput
	}
	if in.Days < MinStayDays || in.Days > MaxStayDays {
		return CheckInResult{}, fmt.Errorf("%w: days must be between %d and %d", ErrInvalidInput, MinStayDays, MaxStayDays)
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return CheckInResult{}, err
	}
	if p.Species != pets.SpeciesDog && p.Species != pets.SpeciesCat {
		return CheckInResult{}, pets.ErrInvalidSpecies
	}

	quote := ComputeTotal(p.Species, in.Days, in.GroomingRequested, p.WeightLbs)

	today := dateOf(s.now())
	stay := Stay{
		ID:                uuid.NewString(),
		PetID:             p.ID,
		CheckIn:           today,
		Days:              in.Days,
		AmountDueCents:    quote.TotalCents,
		GroomingRequested: in.GroomingRequested,
	}

	var charge *GroomingCharge
	if quote.GroomingCents > 0 {
		charge = &GroomingCharge{
			ID:          uuid.NewString(),
			StayID:      stay.ID,
			PetID:       p.ID,
			ServiceDate: today,
			ServiceType: groomingServiceType,
			PriceCents:  quote.GroomingCents,
		}
	}

	if err := s.repo.CreateStayGated(ctx, p.Species, Capacity(p.Species), stay, charge); err != nil {
		if errors.Is(err, ErrNoSpace) {
			return CheckInResult{}, fmt.Errorf("%w for %ss", ErrNoSpace, p.Species)
		}
		return CheckInResult{}, err
	}

	return CheckInResult{
		StayID:        stay.ID,
		Message:       checkInMessage(p.Name, in.GroomingRequested, quote),
		BoardingCents: quote.BoardingCents,
		GroomingCents: quote.GroomingCents,
		TotalCents:    quote.TotalCents,
	}, nil
}

func checkInMessage(petName string, groomingRequested bool, q Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s checked in successfully!\n", petName)
	fmt.Fprintf(&b, "Space assigned. Boarding amount: $%s", dollars(q.BoardingCents))

	if !groomingRequested {
		return b.String()
	}

	switch {
	case q.GroomingCents > 0:
		fmt.Fprintf(&b, "\nGrooming service scheduled: $%s", dollars(q.GroomingCents))
		fmt.Fprintf(&b, "\nTotal amount due: $%s", dollars(q.TotalCents))
	case q.Verdict == GroomingWrongSpecies:
		b.WriteString("\nNote: Grooming only available for dogs")
	case q.Verdict == GroomingStayTooShort:
		b.WriteString("\nNote: Grooming only available for dogs staying 2+ days")
	case q.Verdict == GroomingUnderweight:
		b.WriteString("\nNote: Dog is too small for grooming (minimum 2lbs required)")
	}
	return b.String()
}

type CheckOutResult struct {
	Message            string
	AmountChargedCents int64
}

// CheckOut closes an open stay and returns the amount fixed at check-in,
// untouched by any pet edits since. The close itself is a conditional
// update on the open row; a second attempt gets ErrAlreadyClosed, the
// space is released implicitly because the stay stops counting as open.
func (s *Service) CheckOut(ctx context.Context, stayID string) (CheckOutResult, error) {
	stayID = strings.TrimSpace(stayID)
	if stayID == "" {
		return CheckOutResult{}, ErrInvalidInput
	}

	det, err := s.repo.GetStayDetail(ctx, stayID)
	if err != nil {
		return CheckOutResult{}, err
	}

	if err := s.repo.CloseStay(ctx, stayID, dateOf(s.now())); err != nil {
		return CheckOutResult{}, err
	}

	return CheckOutResult{
		Message:            fmt.Sprintf("%s checked out successfully.\nAmount paid: $%s", det.PetName, dollars(det.Stay.AmountDueCents)),
		AmountChargedCents: det.Stay.AmountDueCents,
	}, nil
}

type Spaces struct {
	DogSpaces int
	CatSpaces int
}

// AvailableSpaces derives free capacity per species from open stay rows,
// floored at zero.
func (s *Service) AvailableSpaces(ctx context.Context) (Spaces, error) {
	occ, err := s.repo.OccupancyBySpecies(ctx)
	if err != nil {
		return Spaces{}, err
	}
	return Spaces{
		DogSpaces: max(0, TotalDogSpaces-occ[pets.SpeciesDog]),
		CatSpaces: max(0, TotalCatSpaces-occ[pets.SpeciesCat]),
	}, nil
}

// dateOf truncates a timestamp to its UTC date. Stays are kept at
// date granularity like the rest of the ledger.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
