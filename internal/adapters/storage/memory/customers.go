package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-boarding/internal/domain/customers"
)

func (r *customerRepo) Create(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("customer id required")
	}
	if _, exists := r.customers[c.ID]; exists {
		return errors.New("customer already exists")
	}
	r.customers[c.ID] = c
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return customers.Customer{}, customers.ErrNotFound
	}
	return c, nil
}

func (r *customerRepo) Update(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[c.ID]; !exists {
		return customers.ErrNotFound
	}
	r.customers[c.ID] = c
	return nil
}

// Delete cascades: pets of the customer go, and with each pet its stays
// and grooming charges.
func (r *customerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[id]; !exists {
		return customers.ErrNotFound
	}
	for petID, p := range r.pets {
		if p.CustomerID == id {
			r.deletePetLocked(petID)
		}
	}
	delete(r.customers, id)
	return nil
}

func (r *customerRepo) List(ctx context.Context) ([]customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customers.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return lessByName(out[i], out[j]) })
	return out, nil
}
