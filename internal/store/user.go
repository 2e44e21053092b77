// Package store defines the data access contract for the user collection
// and provides its in-memory implementation.
//
// The collection is volatile and single-process by design; replacing it
// with a durable backend is explicitly out of scope for this service.
package store

import "github.com/phrazzld/user-api/internal/domain"

// UserStore is the contract handlers operate against.
//
// Absence is not an error here: Get, Update and Delete report a missing
// record through their boolean result and leave it to the caller to decide
// whether that means "not found".
type UserStore interface {
	// All returns every user in insertion order.
	All() []domain.User

	// Get returns the user with the given ID, if present.
	Get(id int) (domain.User, bool)

	// Create inserts a new user with a freshly assigned ID and returns it.
	Create(data domain.CreateUser) (domain.User, error)

	// Update merges the provided fields into an existing user and returns
	// the merged record. The ID is never modified.
	Update(id int, data domain.UpdateUser) (domain.User, bool)

	// Delete removes the user with the given ID, reporting whether a
	// record existed and was removed.
	Delete(id int) bool
}
