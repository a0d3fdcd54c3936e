package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-boarding/internal/domain/pets"
)

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	if _, exists := r.customers[p.CustomerID]; !exists {
		return pets.ErrOwnerNotFound
	}
	r.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.pets[p.ID] = p
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pets[id]; !exists {
		return pets.ErrNotFound
	}
	r.deletePetLocked(id)
	return nil
}

func (r *petRepo) ListByCustomer(ctx context.Context, customerID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.pets {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
