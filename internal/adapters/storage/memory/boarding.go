package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/pets"
)

// CreateStayGated holds the write lock across the occupancy count and the
// inserts, which is the whole admission-race story for this adapter.
func (r *boardingRepo) CreateStayGated(ctx context.Context, species pets.Species, limit int, stay boarding.Stay, charge *boarding.GroomingCharge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(stay.ID) == "" {
		return errors.New("stay id required")
	}
	if _, exists := r.pets[stay.PetID]; !exists {
		return pets.ErrNotFound
	}

	if r.occupancyLocked()[species] >= limit {
		return boarding.ErrNoSpace
	}

	r.stays[stay.ID] = stay
	if charge != nil {
		r.charges[charge.ID] = *charge
	}
	return nil
}

func (r *boardingRepo) OccupancyBySpecies(ctx context.Context) (map[pets.Species]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.occupancyLocked(), nil
}

func (s *Store) occupancyLocked() map[pets.Species]int {
	occ := make(map[pets.Species]int, 2)
	for _, st := range s.stays {
		if !st.Open() {
			continue
		}
		if p, ok := s.pets[st.PetID]; ok {
			occ[p.Species]++
		}
	}
	return occ
}

func (r *boardingRepo) GetStayDetail(ctx context.Context, stayID string) (boarding.StayDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.stays[stayID]
	if !ok {
		return boarding.StayDetail{}, boarding.ErrNotFound
	}
	return r.detailLocked(st), nil
}

func (r *boardingRepo) CloseStay(ctx context.Context, stayID string, checkOut time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.stays[stayID]
	if !ok {
		return boarding.ErrNotFound
	}
	if st.CheckOut != nil {
		return boarding.ErrAlreadyClosed
	}
	st.CheckOut = &checkOut
	r.stays[stayID] = st
	return nil
}

func (r *boardingRepo) StaysCheckedInBetween(ctx context.Context, from, to time.Time) ([]boarding.StayDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]boarding.StayDetail, 0)
	for _, st := range r.stays {
		if st.CheckIn.Before(from) || st.CheckIn.After(to) {
			continue
		}
		out = append(out, r.detailLocked(st))
	}
	sortDetails(out)
	return out, nil
}

func (r *boardingRepo) OpenStays(ctx context.Context) ([]boarding.StayDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]boarding.StayDetail, 0)
	for _, st := range r.stays {
		if st.Open() {
			out = append(out, r.detailLocked(st))
		}
	}
	sortDetails(out)
	return out, nil
}

// detailLocked joins a stay with pet, owner and grooming charge. Caller
// holds at least the read lock.
func (s *Store) detailLocked(st boarding.Stay) boarding.StayDetail {
	det := boarding.StayDetail{Stay: st}

	if p, ok := s.pets[st.PetID]; ok {
		det.PetName = p.Name
		det.Species = p.Species
		det.Breed = p.Breed
		det.WeightLbs = p.WeightLbs

		if c, ok := s.customers[p.CustomerID]; ok {
			det.OwnerFirstName = c.FirstName
			det.OwnerLastName = c.LastName
			det.OwnerPhone = c.Phone
			det.OwnerEmail = c.Email
		}
	}

	for _, ch := range s.charges {
		if ch.StayID == st.ID {
			g := ch
			det.Grooming = &g
			break
		}
	}
	return det
}

// sortDetails orders newest check-in first, id as tie-break, so report
// input is deterministic like a DB ORDER BY.
func sortDetails(out []boarding.StayDetail) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Stay, out[j].Stay
		if !a.CheckIn.Equal(b.CheckIn) {
			return a.CheckIn.After(b.CheckIn)
		}
		return a.ID < b.ID
	})
}
