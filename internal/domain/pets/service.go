package pets

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidSpecies = errors.New("invalid species")
	ErrNotFound       = errors.New("pet not found")

	// ErrOwnerNotFound is surfaced by storage when the referenced
	// customer does not exist.
	ErrOwnerNotFound = errors.New("owner not found")
)

var nameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)

const (
	maxAgeYears   = 30
	maxWeightLbs  = 200
	minNameLength = 2
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	CustomerID string
	Name       string
	Species    string
	AgeYears   float64
	Breed      string
	WeightLbs  float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return Pet{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	if !validName(name) || !validName(breed) {
		return Pet{}, ErrInvalidInput
	}

	species, ok := ParseSpecies(in.Species)
	if !ok {
		return Pet{}, ErrInvalidSpecies
	}

	if in.AgeYears <= 0 || in.AgeYears > maxAgeYears {
		return Pet{}, ErrInvalidInput
	}
	if in.WeightLbs <= 0 || in.WeightLbs > maxWeightLbs {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Name:       name,
		Species:    species,
		AgeYears:   in.AgeYears,
		Breed:      breed,
		WeightLbs:  in.WeightLbs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Pet, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

type UpdateInput struct {
	// nil = leave untouched. Species is deliberately absent: a boarded
	// pet switching capacity pools mid-stay has no sane meaning.
	Name      *string
	AgeYears  *float64
	Breed     *string
	WeightLbs *float64
}

// Update edits profile fields. Stays priced before the edit keep their
// original amount due; pricing reads the pet only at check-in.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if !validName(v) {
			return Pet{}, ErrInvalidInput
		}
		p.Name = v
	}
	if in.AgeYears != nil {
		if *in.AgeYears <= 0 || *in.AgeYears > maxAgeYears {
			return Pet{}, ErrInvalidInput
		}
		p.AgeYears = *in.AgeYears
	}
	if in.Breed != nil {
		v := strings.TrimSpace(*in.Breed)
		if !validName(v) {
			return Pet{}, ErrInvalidInput
		}
		p.Breed = v
	}
	if in.WeightLbs != nil {
		if *in.WeightLbs <= 0 || *in.WeightLbs > maxWeightLbs {
			return Pet{}, ErrInvalidInput
		}
		p.WeightLbs = *in.WeightLbs
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// validName: letters and spaces only, at least 2 characters. Same rule for
// pet names and breeds.
func validName(s string) bool {
	if len(strings.TrimSpace(s)) < minNameLength {
		return false
	}
	return nameRe.MatchString(s)
}
