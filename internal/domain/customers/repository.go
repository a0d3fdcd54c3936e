package customers

import "context"

type Repository interface {
	Create(ctx context.Context, c Customer) error
	GetByID(ctx context.Context, id string) (Customer, error)
	Update(ctx context.Context, c Customer) error

	// Delete removes the customer and cascades to pets, boarding stays
	// and grooming charges. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	// List returns all customers ordered by last name, then first name.
	List(ctx context.Context) ([]Customer, error)
}
