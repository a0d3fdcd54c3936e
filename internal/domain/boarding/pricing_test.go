package boarding

import (
	"testing"

	"pet-boarding/internal/domain/pets"
)

func TestComputeTotal_DogWithGrooming_MediumTier(t *testing.T) {
	q := ComputeTotal(pets.SpeciesDog, 3, true, 25)

	if q.BoardingCents != 90_00 {
		t.Fatalf("boarding: expected 9000, got %d", q.BoardingCents)
	}
	if q.GroomingCents != 70_00 {
		t.Fatalf("grooming: expected 7000, got %d", q.GroomingCents)
	}
	if q.TotalCents != 160_00 {
		t.Fatalf("total: expected 16000, got %d", q.TotalCents)
	}
	if q.Tier.Name != "Medium" {
		t.Fatalf("expected Medium tier, got %q", q.Tier.Name)
	}
}

func TestComputeTotal_CatGroomingRequested_NotEligible(t *testing.T) {
	q := ComputeTotal(pets.SpeciesCat, 5, true, 10)

	if q.BoardingCents != 125_00 || q.GroomingCents != 0 || q.TotalCents != 125_00 {
		t.Fatalf("expected (12500, 0, 12500), got (%d, %d, %d)", q.BoardingCents, q.GroomingCents, q.TotalCents)
	}
	if q.Verdict != GroomingWrongSpecies {
		t.Fatalf("expected wrong-species verdict, got %d", q.Verdict)
	}
}

func TestComputeTotal_DogOneDay_StayTooShort(t *testing.T) {
	q := ComputeTotal(pets.SpeciesDog, 1, true, 15)

	if q.BoardingCents != 30_00 || q.GroomingCents != 0 || q.TotalCents != 30_00 {
		t.Fatalf("expected (3000, 0, 3000), got (%d, %d, %d)", q.BoardingCents, q.GroomingCents, q.TotalCents)
	}
	if q.Verdict != GroomingStayTooShort {
		t.Fatalf("expected stay-too-short verdict, got %d", q.Verdict)
	}
}

func TestComputeTotal_UnderweightDog(t *testing.T) {
	q := ComputeTotal(pets.SpeciesDog, 4, true, 1.5)

	if q.GroomingCents != 0 {
		t.Fatalf("expected no grooming charge, got %d", q.GroomingCents)
	}
	if q.Verdict != GroomingUnderweight {
		t.Fatalf("expected underweight verdict, got %d", q.Verdict)
	}
}

func TestComputeTotal_GroomingNotRequested(t *testing.T) {
	q := ComputeTotal(pets.SpeciesDog, 3, false, 25)

	if q.GroomingCents != 0 || q.TotalCents != 90_00 {
		t.Fatalf("expected boarding only, got (%d, %d)", q.GroomingCents, q.TotalCents)
	}
}

func TestGroomingTierFor_Bands(t *testing.T) {
	cases := []struct {
		weight float64
		name   string
		price  int64
	}{
		{2, "Small", 50_00},
		{20, "Small", 50_00},
		{20.5, "Medium", 70_00}, // between the nominal bands, rounds up a tier
		{21, "Medium", 70_00},
		{50, "Medium", 70_00},
		{51, "Large", 90_00},
		{100, "Large", 90_00},
		{101, "Extra Large", 110_00},
		{180, "Extra Large", 110_00},
	}

	for _, tc := range cases {
		tier, ok := GroomingTierFor(tc.weight)
		if !ok {
			t.Fatalf("weight %v: expected a tier", tc.weight)
		}
		if tier.Name != tc.name || tier.PriceCents != tc.price {
			t.Fatalf("weight %v: expected %s/$%d, got %s/$%d", tc.weight, tc.name, tc.price/100, tier.Name, tier.PriceCents/100)
		}
	}

	if _, ok := GroomingTierFor(1.9); ok {
		t.Fatalf("expected no tier below 2 lbs")
	}
}

func TestRateCents(t *testing.T) {
	if RateCents(pets.SpeciesDog) != 30_00 {
		t.Fatalf("dog rate wrong")
	}
	if RateCents(pets.SpeciesCat) != 25_00 {
		t.Fatalf("cat rate wrong")
	}
	if RateCents(pets.Species("ferret")) != 0 {
		t.Fatalf("unknown species should rate 0")
	}
}

func TestDollarsFormatting(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{30_00, "30.00"},
		{160_00, "160.00"},
		{1234_56, "1,234.56"},
		{1234567_89, "1,234,567.89"},
	}
	for _, tc := range cases {
		if got := dollars(tc.cents); got != tc.want {
			t.Fatalf("dollars(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
