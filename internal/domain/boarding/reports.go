package boarding

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"pet-boarding/internal/domain/pets"
)

// dayStats aggregates the stays that checked in on one calendar date.
type dayStats struct {
	date time.Time

	boardings int
	dogs      int
	cats      int
	staySum   int // sum of requested days, for the average

	revenueCents         int64
	dogRevenueCents      int64
	catRevenueCents      int64
	groomingCount        int // requested, dog
	groomingRevenueCents int64
}

// buildDaily groups window rows by check-in date, most recent date first.
// The descending order is also the peak-day tie-break: the first maximum
// encountered wins.
func buildDaily(rows []StayDetail) []dayStats {
	byDate := make(map[time.Time]*dayStats)
	for _, det := range rows {
		d := det.Stay.CheckIn
		ds, ok := byDate[d]
		if !ok {
			ds = &dayStats{date: d}
			byDate[d] = ds
		}

		ds.boardings++
		ds.staySum += det.Stay.Days
		ds.revenueCents += det.Stay.AmountDueCents

		switch det.Species {
		case pets.SpeciesDog:
			ds.dogs++
			ds.dogRevenueCents += det.Stay.AmountDueCents
		case pets.SpeciesCat:
			ds.cats++
			ds.catRevenueCents += det.Stay.AmountDueCents
		}

		if det.Stay.GroomingRequested && det.Species == pets.SpeciesDog {
			ds.groomingCount++
		}
		if det.Grooming != nil {
			ds.groomingRevenueCents += det.Grooming.PriceCents
		}
	}

	out := make([]dayStats, 0, len(byDate))
	for _, ds := range byDate {
		out = append(out, *ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.After(out[j].date) })
	return out
}

// reportWindow resolves the trailing [today-N, today] range.
func (s *Service) reportWindow(periodDays int) (from, to time.Time) {
	to = dateOf(s.now())
	from = to.AddDate(0, 0, -periodDays)
	return from, to
}

// OccupancyReport renders per-day boarding counts, current occupancy
// against capacity and summary statistics for a trailing window of
// periodDays days. Empty windows render all-zero sections.
func (s *Service) OccupancyReport(ctx context.Context, periodDays int) (string, error) {
	if periodDays <= 0 {
		return "", fmt.Errorf("%w: period must be positive", ErrInvalidInput)
	}

	from, to := s.reportWindow(periodDays)
	rows, err := s.repo.StaysCheckedInBetween(ctx, from, to)
	if err != nil {
		return "", err
	}
	open, err := s.repo.OpenStays(ctx)
	if err != nil {
		return "", err
	}

	daily := buildDaily(rows)

	var b strings.Builder
	b.WriteString("OCCUPANCY REPORT\n")
	b.WriteString(rule('=', 60))
	fmt.Fprintf(&b, "Report Period: %s to %s (%d days)\n", from.Format("2006-01-02"), to.Format("2006-01-02"), periodDays)
	fmt.Fprintf(&b, "Generated: %s\n", s.now().UTC().Format("2006-01-02 15:04:05"))
	b.WriteString(rule('=', 60))
	b.WriteString("\n")

	// current status, derived from open stays only
	b.WriteString("CURRENT OCCUPANCY STATUS\n")
	b.WriteString(rule('-', 40))

	dogsNow, catsNow := 0, 0
	openStaySum := 0
	for _, det := range open {
		switch det.Species {
		case pets.SpeciesDog:
			dogsNow++
		case pets.SpeciesCat:
			catsNow++
		}
		openStaySum += det.Stay.Days
	}
	totalNow := dogsNow + catsNow
	totalCapacity := TotalDogSpaces + TotalCatSpaces

	fmt.Fprintf(&b, "Dogs: %d/%d spaces (%.1f%% occupied)\n", dogsNow, TotalDogSpaces, pct(dogsNow, TotalDogSpaces))
	fmt.Fprintf(&b, "Cats: %d/%d spaces (%.1f%% occupied)\n", catsNow, TotalCatSpaces, pct(catsNow, TotalCatSpaces))
	fmt.Fprintf(&b, "Total: %d/%d spaces (%.1f%% occupied)\n", totalNow, totalCapacity, pct(totalNow, totalCapacity))
	fmt.Fprintf(&b, "Average Stay Duration: %.1f days\n\n", avg(openStaySum, len(open)))

	b.WriteString("DAILY OCCUPANCY BREAKDOWN\n")
	b.WriteString(rule('-', 60))
	fmt.Fprintf(&b, "%-12s %-8s %-8s %-8s %-10s\n", "Date", "Total", "Dogs", "Cats", "Avg Stay")
	b.WriteString(rule('-', 60))

	totalBoardings, totalDogs, totalCats := 0, 0, 0
	for _, d := range daily {
		fmt.Fprintf(&b, "%-12s %-8d %-8d %-8d %-10.1f\n",
			d.date.Format("2006-01-02"), d.boardings, d.dogs, d.cats, avg(d.staySum, d.boardings))
		totalBoardings += d.boardings
		totalDogs += d.dogs
		totalCats += d.cats
	}
	b.WriteString(rule('-', 60))

	b.WriteString("\nSUMMARY STATISTICS\n")
	b.WriteString(rule('-', 40))
	if len(daily) > 0 {
		fmt.Fprintf(&b, "Total Boardings: %d\n", totalBoardings)
		fmt.Fprintf(&b, "Average Daily Boardings: %.1f\n", avg(totalBoardings, len(daily)))
		fmt.Fprintf(&b, "Dog Boardings: %d (%.1f%%)\n", totalDogs, pct(totalDogs, totalBoardings))
		fmt.Fprintf(&b, "Cat Boardings: %d (%.1f%%)\n", totalCats, pct(totalCats, totalBoardings))

		peak := daily[0]
		for _, d := range daily[1:] {
			if d.boardings > peak.boardings {
				peak = d
			}
		}
		fmt.Fprintf(&b, "\nPeak Day: %s (%d boardings)\n", peak.date.Format("2006-01-02"), peak.boardings)
	} else {
		b.WriteString("Total Boardings: 0\n")
	}

	return b.String(), nil
}

// RevenueReport renders the pricing card, per-day and per-species revenue,
// grooming statistics, projections and pending revenue for a trailing
// window of periodDays days.
func (s *Service) RevenueReport(ctx context.Context, periodDays int) (string, error) {
	if periodDays <= 0 {
		return "", fmt.Errorf("%w: period must be positive", ErrInvalidInput)
	}

	from, to := s.reportWindow(periodDays)
	rows, err := s.repo.StaysCheckedInBetween(ctx, from, to)
	if err != nil {
		return "", err
	}
	open, err := s.repo.OpenStays(ctx)
	if err != nil {
		return "", err
	}

	daily := buildDaily(rows)

	var b strings.Builder
	b.WriteString("REVENUE REPORT\n")
	b.WriteString(rule('=', 60))
	fmt.Fprintf(&b, "Report Period: %s to %s (%d days)\n", from.Format("2006-01-02"), to.Format("2006-01-02"), periodDays)
	fmt.Fprintf(&b, "Generated: %s\n", s.now().UTC().Format("2006-01-02 15:04:05"))
	b.WriteString(rule('=', 60))
	b.WriteString("\n")

	b.WriteString("CURRENT PRICING\n")
	b.WriteString(rule('-', 40))
	fmt.Fprintf(&b, "Boarding - Dogs: $%s/day\n", wholeDollars(RateCents(pets.SpeciesDog)))
	fmt.Fprintf(&b, "Boarding - Cats: $%s/day\n", wholeDollars(RateCents(pets.SpeciesCat)))
	b.WriteString("Grooming - Dogs (by weight):\n")
	for _, t := range groomingTiers {
		if t.MaxLbs == 0 {
			fmt.Fprintf(&b, "  %s (%s lbs and above): $%s\n", t.Name, lbs(t.MinLbs), wholeDollars(t.PriceCents))
		} else {
			fmt.Fprintf(&b, "  %s (%s-%s lbs): $%s\n", t.Name, lbs(t.MinLbs), lbs(t.MaxLbs), wholeDollars(t.PriceCents))
		}
	}
	b.WriteString("\n")

	var (
		totalRevenue    int64
		totalBoardings  int
		groomingCount   int
		groomingRevenue int64
	)
	for _, d := range daily {
		totalRevenue += d.revenueCents
		totalBoardings += d.boardings
		groomingCount += d.groomingCount
		groomingRevenue += d.groomingRevenueCents
	}
	boardingRevenue := totalRevenue - groomingRevenue

	b.WriteString("REVENUE SUMMARY\n")
	b.WriteString(rule('-', 40))
	fmt.Fprintf(&b, "Total Boardings: %d\n", totalBoardings)
	fmt.Fprintf(&b, "Total Revenue: $%s\n", dollars(totalRevenue))
	fmt.Fprintf(&b, "  - Boarding Revenue: $%s\n", dollars(boardingRevenue))
	fmt.Fprintf(&b, "  - Grooming Revenue: $%s\n", dollars(groomingRevenue))
	fmt.Fprintf(&b, "Grooming Services: %d\n", groomingCount)

	chargeCount, chargeSum := windowGroomingCharges(rows)
	if chargeCount > 0 {
		fmt.Fprintf(&b, "Average Grooming Price: $%s\n", dollars(avgCents(chargeSum, chargeCount)))
	}
	fmt.Fprintf(&b, "Average Revenue per Booking: $%s\n", dollars(avgCents(totalRevenue, totalBoardings)))

	// by species
	b.WriteString("\nREVENUE BY PET TYPE\n")
	b.WriteString(rule('-', 40))
	var dogRev, catRev int64
	dogCount, catCount := 0, 0
	for _, det := range rows {
		switch det.Species {
		case pets.SpeciesDog:
			dogCount++
			dogRev += det.Stay.AmountDueCents
		case pets.SpeciesCat:
			catCount++
			catRev += det.Stay.AmountDueCents
		}
	}
	fmt.Fprintf(&b, "Dogs: %d boardings, $%s revenue (avg $%s)\n", dogCount, dollars(dogRev), dollars(avgCents(dogRev, dogCount)))
	fmt.Fprintf(&b, "Cats: %d boardings, $%s revenue (avg $%s)\n", catCount, dollars(catRev), dollars(avgCents(catRev, catCount)))

	b.WriteString("\nDAILY REVENUE BREAKDOWN\n")
	b.WriteString(rule('-', 80))
	fmt.Fprintf(&b, "%-12s %-10s %-12s %-10s %-10s %-10s\n", "Date", "Boardings", "Revenue", "Dogs", "Cats", "Grooming")
	b.WriteString(rule('-', 80))
	for _, d := range daily {
		fmt.Fprintf(&b, "%-12s %-10d $%-11s $%-9s $%-9s %-10d\n",
			d.date.Format("2006-01-02"), d.boardings,
			dollars(d.revenueCents), dollars(d.dogRevenueCents), dollars(d.catRevenueCents),
			d.groomingCount)
	}
	b.WriteString(rule('-', 80))

	b.WriteString("\nFINANCIAL METRICS\n")
	b.WriteString(rule('-', 40))
	if len(daily) > 0 {
		// average over days with activity, as the daily table shows them
		avgDaily := avgCents(totalRevenue, len(daily))
		fmt.Fprintf(&b, "Average Daily Revenue: $%s\n", dollars(avgDaily))
		fmt.Fprintf(&b, "Projected Monthly Revenue: $%s\n", dollars(avgDaily*30))
		fmt.Fprintf(&b, "Projected Annual Revenue: $%s\n", dollars(avgDaily*365))
	}

	// pending revenue covers every open stay, window or not
	var pendingRevenue int64
	for _, det := range open {
		pendingRevenue += det.Stay.AmountDueCents
	}
	if pendingRevenue > 0 {
		b.WriteString("\nUPCOMING REVENUE (Current Boardings)\n")
		b.WriteString(rule('-', 40))
		fmt.Fprintf(&b, "Pending Boardings: %d\n", len(open))
		fmt.Fprintf(&b, "Pending Revenue: $%s\n", dollars(pendingRevenue))
	}

	return b.String(), nil
}

func windowGroomingCharges(rows []StayDetail) (count int, sum int64) {
	for _, det := range rows {
		if det.Grooming != nil {
			count++
			sum += det.Grooming.PriceCents
		}
	}
	return count, sum
}

func rule(ch byte, n int) string {
	return strings.Repeat(string(ch), n) + "\n"
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func avg(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgCents(sum int64, n int) int64 {
	if n == 0 {
		return 0
	}
	return int64(math.Round(float64(sum) / float64(n)))
}
