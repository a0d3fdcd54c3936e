package customers

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("customer not found")
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	sepRe   = regexp.MustCompile(`[\s\-\(\)\.]+`)
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
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Customer, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)

	if !validName(first) {
		return Customer{}, ErrInvalidInput
	}
	// last name is optional in storage, validated when present
	if last != "" && !validName(last) {
		return Customer{}, ErrInvalidInput
	}
	if phone != "" && !validPhone(phone) {
		return Customer{}, ErrInvalidInput
	}
	if email != "" && !emailRe.MatchString(email) {
		return Customer{}, ErrInvalidInput
	}

	now := s.now()
	c := Customer{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Phone:     phone,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Resolve finds the customer whose "first last" name contains the given
// text, case-insensitively, scanning the list in its default order (last
// name, then first name); the first match wins. When nothing matches a new
// customer is created from the text: first token becomes the first name,
// second token (if any) the last name, phone and email empty. This is a
// deliberate heuristic, not an exact match.
func (s *Service) Resolve(ctx context.Context, ownerName string) (Customer, error) {
	ownerName = strings.TrimSpace(ownerName)
	if ownerName == "" {
		return Customer{}, ErrInvalidInput
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return Customer{}, err
	}

	needle := strings.ToLower(ownerName)
	for _, c := range all {
		full := strings.ToLower(c.FirstName + " " + c.LastName)
		if strings.Contains(full, needle) {
			return c, nil
		}
	}

	parts := strings.Fields(ownerName)
	first := ownerName
	last := ""
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = parts[1]
	}

	now := s.now()
	c := Customer{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// repo.Create on purpose: the resolver accepts names the stricter
	// Create validation would reject (single-letter tokens etc).
	if err := s.repo.Create(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Customer{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	// nil = leave untouched
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Customer{}, ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Customer{}, err
	}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if !validName(v) {
			return Customer{}, ErrInvalidInput
		}
		c.FirstName = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v != "" && !validName(v) {
			return Customer{}, ErrInvalidInput
		}
		c.LastName = v
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		if v != "" && !validPhone(v) {
			return Customer{}, ErrInvalidInput
		}
		c.Phone = v
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if v != "" && !emailRe.MatchString(v) {
			return Customer{}, ErrInvalidInput
		}
		c.Email = v
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Delete cascades: the customer's pets, their stays and grooming charges
// go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// validName: letters and spaces only, at least 2 characters.
func validName(s string) bool {
	if len(strings.TrimSpace(s)) < 2 {
		return false
	}
	return nameRe.MatchString(s)
}

// validPhone: exactly 10 digits once common separators are stripped.
func validPhone(s string) bool {
	clean := sepRe.ReplaceAllString(s, "")
	if len(clean) != 10 {
		return false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
