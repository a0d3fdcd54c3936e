package boarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-boarding/internal/domain/pets"
)

// Invoice renders a billing statement for a stay, open or closed. It is a
// pure function of persisted state: calling it twice yields identical
// output, and nothing is written. Unknown ids return ErrNotFound.
func (s *Service) Invoice(ctx context.Context, stayID string) (string, error) {
	stayID = strings.TrimSpace(stayID)
	if stayID == "" {
		return "", ErrInvalidInput
	}

	det, err := s.repo.GetStayDetail(ctx, stayID)
	if err != nil {
		return "", err
	}
	return renderInvoice(det, dateOf(s.now())), nil
}

func renderInvoice(det StayDetail, today time.Time) string {
	stay := det.Stay
	rate := RateCents(det.Species)
	boardingAmount := rate * int64(stay.Days)

	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE #BOARD-%s\n", shortID(stay.ID))
	fmt.Fprintf(&b, "Date: %s\n\n", today.Format("2006-01-02"))

	fmt.Fprintf(&b, "Customer: %s %s\n", det.OwnerFirstName, det.OwnerLastName)
	fmt.Fprintf(&b, "Phone: %s\n", orNA(det.OwnerPhone))
	fmt.Fprintf(&b, "Email: %s\n\n", orNA(det.OwnerEmail))

	fmt.Fprintf(&b, "Pet: %s\n", det.PetName)
	fmt.Fprintf(&b, "Type: %s\n", titleSpecies(det.Species))
	fmt.Fprintf(&b, "Breed: %s\n", orNA(det.Breed))
	fmt.Fprintf(&b, "Weight: %s lbs\n\n", lbs(det.WeightLbs))

	fmt.Fprintf(&b, "Check-in: %s\n", stay.CheckIn.Format("2006-01-02"))
	if stay.CheckOut != nil {
		fmt.Fprintf(&b, "Check-out: %s\n", stay.CheckOut.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Days Stay: %d\n", stay.Days)
	fmt.Fprintf(&b, "Rate: $%s per day\n", wholeDollars(rate))
	fmt.Fprintf(&b, "Boarding Amount: $%s\n\n", dollars(boardingAmount))

	if stay.GroomingRequested {
		writeGroomingLines(&b, det)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total Amount: $%s\n\n", dollars(stay.AmountDueCents))
	b.WriteString("Thank you for choosing Pet Boarding!\n")
	return b.String()
}

// writeGroomingLines emits either the charge with its tier, or a line
// naming the eligibility condition that ruled the requested add-on out.
func writeGroomingLines(b *strings.Builder, det StayDetail) {
	if det.Grooming != nil {
		fmt.Fprintf(b, "Grooming Service: Yes ($%s)\n", dollars(det.Grooming.PriceCents))
		if tier, ok := GroomingTierFor(det.WeightLbs); ok {
			fmt.Fprintf(b, "Grooming Tier: %s (Weight: %slbs)\n", tier.Name, lbs(det.WeightLbs))
		}
		return
	}

	b.WriteString("Grooming Service: Requested but not applicable\n")
	switch EvaluateGrooming(det.Species, det.Stay.Days, det.WeightLbs) {
	case GroomingWrongSpecies:
		b.WriteString("  (Only available for dogs)\n")
	case GroomingStayTooShort:
		b.WriteString("  (Minimum 2-day stay required)\n")
	case GroomingUnderweight:
		fmt.Fprintf(b, "  (Minimum 2 lbs required, current: %slbs)\n", lbs(det.WeightLbs))
	}
}

// shortID keeps invoice numbers readable: first uuid group, upper-cased.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return strings.ToUpper(id)
}

// titleSpecies capitalizes the enum for display: "Dog", "Cat".
func titleSpecies(sp pets.Species) string {
	s := string(sp)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
