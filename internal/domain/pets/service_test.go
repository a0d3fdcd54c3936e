package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByCustomer(ctx context.Context, customerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		CustomerID: "cust-1",
		Name:       "Milo",
		Species:    "dog",
		AgeYears:   4,
		Breed:      "Beagle",
		WeightLbs:  25,
	}
}

func TestParseSpecies(t *testing.T) {
	if sp, ok := ParseSpecies(" Dog "); !ok || sp != SpeciesDog {
		t.Fatalf("expected dog, got %q ok=%v", sp, ok)
	}
	if sp, ok := ParseSpecies("CAT"); !ok || sp != SpeciesCat {
		t.Fatalf("expected cat, got %q ok=%v", sp, ok)
	}
	if _, ok := ParseSpecies("hamster"); ok {
		t.Fatalf("expected hamster to be rejected")
	}
}

func TestService_Create_NormalizesSpecies(t *testing.T) {
	svc := NewService(newTestRepo())

	in := validCreateInput()
	in.Species = "Dog"
	p, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Species != SpeciesDog {
		t.Fatalf("expected normalized species dog, got %q", p.Species)
	}
}

func TestService_Create_RejectsUnknownSpecies(t *testing.T) {
	svc := NewService(newTestRepo())

	in := validCreateInput()
	in.Species = "parrot"
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidSpecies) {
		t.Fatalf("expected ErrInvalidSpecies, got %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = " " }},
		{"name with digits", func(in *CreateInput) { in.Name = "M1lo" }},
		{"short name", func(in *CreateInput) { in.Name = "M" }},
		{"zero age", func(in *CreateInput) { in.AgeYears = 0 }},
		{"age above max", func(in *CreateInput) { in.AgeYears = 31 }},
		{"zero weight", func(in *CreateInput) { in.WeightLbs = 0 }},
		{"weight above max", func(in *CreateInput) { in.WeightLbs = 201 }},
		{"empty breed", func(in *CreateInput) { in.Breed = "" }},
		{"missing customer", func(in *CreateInput) { in.CustomerID = "" }},
	}

	for _, tc := range cases {
		in := validCreateInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seed := Pet{ID: "p1", CustomerID: "c1", Name: "Milo", Species: SpeciesDog, AgeYears: 4, Breed: "Beagle", WeightLbs: 25}
	_ = repo.Create(context.Background(), seed)

	w := 30.0
	got, err := svc.Update(context.Background(), "p1", UpdateInput{WeightLbs: &w})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.WeightLbs != 30 {
		t.Fatalf("expected weight 30, got %v", got.WeightLbs)
	}
	if got.Name != "Milo" || got.Species != SpeciesDog {
		t.Fatalf("expected untouched fields, got %+v", got)
	}
	if got.UpdatedAt != now {
		t.Fatalf("expected UpdatedAt bumped")
	}
}
