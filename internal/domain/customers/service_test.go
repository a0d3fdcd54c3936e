package customers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Customer
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Customer{}}
}

func (r *testRepo) Create(ctx context.Context, c Customer) error {
	if c.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[c.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return Customer{}, errRepoNotFound
	}
	return c, nil
}

func (r *testRepo) Update(ctx context.Context, c Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Customer, error) {
	out := make([]Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Resolve_SubstringMatch_CaseInsensitive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	seed := Customer{ID: "c1", FirstName: "Jane", LastName: "Doe"}
	_ = repo.Create(context.Background(), seed)

	got, err := svc.Resolve(context.Background(), "jane")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.ID != "c1" {
		t.Fatalf("expected existing customer c1, got %q", got.ID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected no new customer, have %d", len(repo.byID))
	}
}

func TestService_Resolve_FirstMatchInListOrderWins(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	// Both full names contain "an"; list order is last name then first
	// name, so Anders sorts before Zimmer and must win.
	_ = repo.Create(context.Background(), Customer{ID: "c1", FirstName: "Ann", LastName: "Zimmer"})
	_ = repo.Create(context.Background(), Customer{ID: "c2", FirstName: "Dan", LastName: "Anders"})

	got, err := svc.Resolve(context.Background(), "an")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.ID != "c2" {
		t.Fatalf("expected first match in list order (c2), got %q", got.ID)
	}
}

func TestService_Resolve_NoMatch_CreatesFromNameParts(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.Resolve(context.Background(), "Bob Smith")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.FirstName != "Bob" || got.LastName != "Smith" {
		t.Fatalf("expected Bob Smith, got %q %q", got.FirstName, got.LastName)
	}
	if got.Phone != "" || got.Email != "" {
		t.Fatalf("expected empty phone/email on resolver-created customer")
	}
	if got.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}

	stored, err := repo.GetByID(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("created customer not persisted: %v", err)
	}
	if stored.FirstName != "Bob" {
		t.Fatalf("persisted first name mismatch: %q", stored.FirstName)
	}
}

func TestService_Resolve_SingleToken_EmptyLastName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	got, err := svc.Resolve(context.Background(), "Cher")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.FirstName != "Cher" || got.LastName != "" {
		t.Fatalf("expected first=Cher last=empty, got %q %q", got.FirstName, got.LastName)
	}
}

func TestService_Resolve_EmptyInput(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Resolve(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []struct {
		name string
		in   CreateInput
		ok   bool
	}{
		{"valid full", CreateInput{FirstName: "Jane", LastName: "Doe", Phone: "555-123-4567", Email: "jane@example.com"}, true},
		{"valid minimal", CreateInput{FirstName: "Jane"}, true},
		{"first name required", CreateInput{FirstName: " "}, false},
		{"first name digits", CreateInput{FirstName: "J4ne"}, false},
		{"first name too short", CreateInput{FirstName: "J"}, false},
		{"phone too short", CreateInput{FirstName: "Jane", Phone: "12345"}, false},
		{"phone letters", CreateInput{FirstName: "Jane", Phone: "55512345ab"}, false},
		{"phone with separators ok", CreateInput{FirstName: "Jane", Phone: "(555) 123.4567"}, true},
		{"bad email", CreateInput{FirstName: "Jane", Email: "jane@nodomain"}, false},
	}

	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_Create_TrimsFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), CreateInput{
		FirstName: "  Jane ",
		LastName:  " Doe ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.FirstName != "Jane" || c.LastName != "Doe" {
		t.Fatalf("expected trimmed names, got %q %q", c.FirstName, c.LastName)
	}
	if !strings.Contains(c.ID, "-") {
		t.Fatalf("expected uuid id, got %q", c.ID)
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	seed := Customer{ID: "c1", FirstName: "Jane", LastName: "Doe", Phone: "5551234567"}
	_ = repo.Create(context.Background(), seed)

	phone := "5559876543"
	got, err := svc.Update(context.Background(), "c1", UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Phone != phone {
		t.Fatalf("expected phone updated, got %q", got.Phone)
	}
	if got.FirstName != "Jane" || got.LastName != "Doe" {
		t.Fatalf("expected untouched names, got %q %q", got.FirstName, got.LastName)
	}
}
