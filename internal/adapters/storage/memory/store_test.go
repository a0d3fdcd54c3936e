package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/customers"
	"pet-boarding/internal/domain/pets"
)

var day = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// seedBoardedDog inserts a customer, their dog and an open stay with a
// grooming charge, returning the stay id.
func seedBoardedDog(t *testing.T, s *Store) string {
	t.Helper()
	ctx := context.Background()

	if err := s.Customers().Create(ctx, customers.Customer{
		ID:        "c1",
		FirstName: "Jane",
		LastName:  "Doe",
		CreatedAt: day,
		UpdatedAt: day,
	}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	if err := s.Pets().Create(ctx, pets.Pet{
		ID:         "p1",
		CustomerID: "c1",
		Name:       "Rex",
		Species:    pets.SpeciesDog,
		AgeYears:   4,
		Breed:      "Labrador",
		WeightLbs:  25,
		CreatedAt:  day,
		UpdatedAt:  day,
	}); err != nil {
		t.Fatalf("seed pet: %v", err)
	}

	stay := boarding.Stay{
		ID:                "stay-1",
		PetID:             "p1",
		CheckIn:           day,
		Days:              3,
		AmountDueCents:    160_00,
		GroomingRequested: true,
	}
	charge := &boarding.GroomingCharge{
		ID:          "charge-1",
		StayID:      stay.ID,
		PetID:       "p1",
		ServiceDate: day,
		ServiceType: "Full Grooming",
		PriceCents:  70_00,
	}
	if err := s.Boarding().CreateStayGated(ctx, pets.SpeciesDog, boarding.TotalDogSpaces, stay, charge); err != nil {
		t.Fatalf("seed stay: %v", err)
	}
	return stay.ID
}

func TestCustomerDelete_CascadesToPetsStaysAndCharges(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	stayID := seedBoardedDog(t, s)

	if err := s.Customers().Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	if len(s.pets) != 0 || len(s.stays) != 0 || len(s.charges) != 0 {
		t.Fatalf("cascade left rows behind: pets=%d stays=%d charges=%d",
			len(s.pets), len(s.stays), len(s.charges))
	}
	if _, err := s.Pets().GetByID(ctx, "p1"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("pet after cascade: got %v, want ErrNotFound", err)
	}
	if _, err := s.Boarding().GetStayDetail(ctx, stayID); !errors.Is(err, boarding.ErrNotFound) {
		t.Fatalf("stay after cascade: got %v, want ErrNotFound", err)
	}

	// the open stay stops counting, so the space is free again
	occ, err := s.Boarding().OccupancyBySpecies(ctx)
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if occ[pets.SpeciesDog] != 0 {
		t.Fatalf("occupancy after cascade: got %d dogs", occ[pets.SpeciesDog])
	}
}

func TestPetDelete_CascadesToStaysAndCharges(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	stayID := seedBoardedDog(t, s)

	if err := s.Pets().Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete pet: %v", err)
	}

	// the owner survives, everything hanging off the pet goes
	if _, err := s.Customers().GetByID(ctx, "c1"); err != nil {
		t.Fatalf("customer should survive pet delete: %v", err)
	}
	if len(s.stays) != 0 || len(s.charges) != 0 {
		t.Fatalf("cascade left rows behind: stays=%d charges=%d", len(s.stays), len(s.charges))
	}
	if _, err := s.Boarding().GetStayDetail(ctx, stayID); !errors.Is(err, boarding.ErrNotFound) {
		t.Fatalf("stay after cascade: got %v, want ErrNotFound", err)
	}

	occ, err := s.Boarding().OccupancyBySpecies(ctx)
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if occ[pets.SpeciesDog] != 0 {
		t.Fatalf("occupancy after cascade: got %d dogs", occ[pets.SpeciesDog])
	}
}
