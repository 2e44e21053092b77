package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/user-api/internal/domain"
)

func seededStore(t *testing.T) *MemoryUserStore {
	t.Helper()
	s := NewMemoryUserStore()
	require.NoError(t, s.Seed(
		domain.User{ID: 1, Name: "Alice Zhang", Email: "alice@example.com"},
		domain.User{ID: 2, Name: "Bob Lee", Email: "bob@example.com"},
		domain.User{ID: 3, Name: "Carol Wang", Email: "carol@example.com"},
	))
	return s
}

func TestCreateAssignsStrictlyIncreasingIDs(t *testing.T) {
	s := seededStore(t)

	created, err := s.Create(domain.CreateUser{Name: "Dave", Email: "dave@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID, "new ID should be max(existing)+1")

	// Every pre-existing ID is strictly smaller.
	for _, u := range s.All() {
		if u.ID != created.ID {
			assert.Less(t, u.ID, created.ID)
		}
	}

	// The created record is retrievable and equal.
	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	s := NewMemoryUserStore()

	created, err := s.Create(domain.CreateUser{Name: "First", Email: "first@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	s := seededStore(t)

	_, ok := s.Get(999)
	assert.False(t, ok)
}

func TestDeleteTwiceReportsFalseSecondTime(t *testing.T) {
	s := seededStore(t)

	assert.True(t, s.Delete(2))

	_, ok := s.Get(2)
	assert.False(t, ok, "deleted record should be absent")

	assert.False(t, s.Delete(2), "second delete must report false")
	assert.Len(t, s.All(), 2)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	s := seededStore(t)

	name := "Alice Updated"
	updated, ok := s.Update(1, domain.UpdateUser{Name: &name})
	require.True(t, ok)

	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "Alice Updated", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email, "email was not provided and must not change")
}

func TestUpdateEmptyPartialLeavesRecordUnchanged(t *testing.T) {
	s := seededStore(t)

	before, ok := s.Get(3)
	require.True(t, ok)

	updated, ok := s.Update(3, domain.UpdateUser{})
	require.True(t, ok)
	assert.Equal(t, before, updated)

	after, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestUpdateAbsentUserReportsFalse(t *testing.T) {
	s := seededStore(t)

	name := "Nobody"
	_, ok := s.Update(42, domain.UpdateUser{Name: &name})
	assert.False(t, ok)
}

func TestSeedRejectsDuplicateAndNonPositiveIDs(t *testing.T) {
	s := seededStore(t)

	err := s.Seed(domain.User{ID: 1, Name: "Dup", Email: "dup@example.com"})
	assert.ErrorIs(t, err, ErrInvariantViolation)

	err = s.Seed(domain.User{ID: 0, Name: "Zero", Email: "zero@example.com"})
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestAllReturnsInsertionOrderCopy(t *testing.T) {
	s := seededStore(t)

	users := s.All()
	require.Len(t, users, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{users[0].ID, users[1].ID, users[2].ID})

	// Mutating the returned slice must not leak into the store.
	users[0].Name = "tampered"
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Alice Zhang", got.Name)
}
