package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, p Pet) error

	// Delete removes the pet and cascades to its stays and grooming
	// charges. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	ListByCustomer(ctx context.Context, customerID string) ([]Pet, error)
}
