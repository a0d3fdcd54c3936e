package memory

import (
	"strings"
	"sync"

	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/customers"
	"pet-boarding/internal/domain/pets"
)

// Store keeps the whole facility state in maps behind one lock. It backs
// dev mode and tests. The three repository facets share the maps so
// cascading deletes and the admission gate work without a database; the
// single mutex is also what makes the capacity check + insert atomic here.
type Store struct {
	mu sync.RWMutex

	customers map[string]customers.Customer
	pets      map[string]pets.Pet
	stays     map[string]boarding.Stay
	charges   map[string]boarding.GroomingCharge
}

func NewStore() *Store {
	return &Store{
		customers: make(map[string]customers.Customer),
		pets:      make(map[string]pets.Pet),
		stays:     make(map[string]boarding.Stay),
		charges:   make(map[string]boarding.GroomingCharge),
	}
}

// Customers returns the customers repository view of the store.
func (s *Store) Customers() customers.Repository { return &customerRepo{s} }

// Pets returns the pets repository view of the store.
func (s *Store) Pets() pets.Repository { return &petRepo{s} }

// Boarding returns the boarding repository view of the store.
func (s *Store) Boarding() boarding.Repository { return &boardingRepo{s} }

type customerRepo struct{ *Store }
type petRepo struct{ *Store }
type boardingRepo struct{ *Store }

// deletePetLocked removes a pet with its stays and grooming charges.
// Caller holds the write lock.
func (s *Store) deletePetLocked(petID string) {
	for id, st := range s.stays {
		if st.PetID == petID {
			delete(s.stays, id)
		}
	}
	for id, ch := range s.charges {
		if ch.PetID == petID {
			delete(s.charges, id)
		}
	}
	delete(s.pets, petID)
}

func lessByName(a, b customers.Customer) bool {
	al, bl := strings.ToLower(a.LastName), strings.ToLower(b.LastName)
	if al != bl {
		return al < bl
	}
	return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
}
