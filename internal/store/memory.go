package store

import (
	"fmt"
	"sync"

	"github.com/phrazzld/user-api/internal/domain"
)

// MemoryUserStore keeps the user collection in process memory.
//
// All methods hold the mutex for the duration of the whole read-modify-write
// operation, so IDs stay unique and merges never interleave even under
// concurrent requests.
type MemoryUserStore struct {
	mu    sync.Mutex
	users []domain.User
}

// NewMemoryUserStore returns an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

// Seed appends the given users verbatim, preserving their IDs. Intended for
// startup data and tests; returns an error if any seeded ID duplicates an
// existing one or is not positive.
func (s *MemoryUserStore) Seed(users ...domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if u.ID <= 0 {
			return fmt.Errorf("%w: seed user ID %d is not positive", ErrInvariantViolation, u.ID)
		}
		if _, ok := s.indexOf(u.ID); ok {
			return fmt.Errorf("%w: duplicate seed user ID %d", ErrInvariantViolation, u.ID)
		}
		s.users = append(s.users, u)
	}
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *MemoryUserStore) All() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Get returns the user with the given ID, if present.
func (s *MemoryUserStore) Get(id int) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.User{}, false
	}
	return s.users[i], true
}

// Create inserts a new user with ID max(existing)+1, or 1 for an empty
// collection, so a new ID is always strictly greater than every live one.
func (s *MemoryUserStore) Create(data domain.CreateUser) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 1
	for _, u := range s.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}

	// Defensive: the scan above makes a collision impossible unless the
	// collection itself is corrupted.
	if _, ok := s.indexOf(next); ok {
		return domain.User{}, fmt.Errorf("%w: ID %d already present", ErrInvariantViolation, next)
	}

	user := domain.User{
		ID:             next,
		Name:           data.Name,
		Email:          data.Email,
		Age:            data.Age,
		Bio:            data.Bio,
		HashedPassword: data.HashedPassword,
	}
	s.users = append(s.users, user)
	return user, nil
}

// Update merges only the provided fields into the stored record. The ID is
// immutable and cannot be overwritten.
func (s *MemoryUserStore) Update(id int, data domain.UpdateUser) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.User{}, false
	}

	u := s.users[i]
	if data.Name != nil {
		u.Name = *data.Name
	}
	if data.Email != nil {
		u.Email = *data.Email
	}
	if data.Age != nil {
		u.Age = data.Age
	}
	if data.Bio != nil {
		u.Bio = *data.Bio
	}
	s.users[i] = u
	return u, true
}

// Delete removes the user with the given ID. A second delete of the same ID
// reports false.
func (s *MemoryUserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return false
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return true
}

// indexOf locates a user by ID. Callers must hold the mutex.
func (s *MemoryUserStore) indexOf(id int) (int, bool) {
	for i, u := range s.users {
		if u.ID == id {
			return i, true
		}
	}
	return 0, false
}
