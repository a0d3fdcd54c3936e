package customers

import "time"

// Customer owns zero or more pets. Deleting a customer cascades to its
// pets, their stays and grooming charges.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Email     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
