// Package domain defines the core business entities shared across the
// application.
package domain

// User represents a member of the user collection.
//
// The ID is assigned by the store on creation and never changes or gets
// reused afterwards. HashedPassword holds the bcrypt hash of the password
// supplied at creation time and is never serialized.
type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Age            *int   `json:"age,omitempty"`
	Bio            string `json:"bio,omitempty"`
	HashedPassword string `json:"-"`
}

// CreateUser carries the validated fields for a new user. The ID is chosen
// by the store, not the caller.
type CreateUser struct {
	Name           string
	Email          string
	Age            *int
	Bio            string
	HashedPassword string
}

// UpdateUser carries a partial update. Nil fields are left untouched by the
// store; there is deliberately no ID field, the identity of a user is
// immutable.
type UpdateUser struct {
	Name  *string
	Email *string
	Age   *int
	Bio   *string
}
