package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

func seededUserStore(t *testing.T) *UserStore {
	t.Helper()
	s := NewUserStore()
	err := s.Seed(context.Background(), []*domain.User{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)
	return s
}

func TestUserStore_CreateAssignsIncreasingIDs(t *testing.T) {
	s := seededUserStore(t)
	ctx := context.Background()

	u, err := s.Create(ctx, "Carol", "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)

	users := s.List(ctx)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"},
		[]string{users[0].Name, users[1].Name, users[2].Name})
}

func TestUserStore_EmailUniqueness(t *testing.T) {
	s := seededUserStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Dup", "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailConflict)

	// Replace may keep its own email.
	_, err = s.Replace(ctx, 1, "Alice Prime", "alice@example.com")
	assert.NoError(t, err)

	// But not take someone else's.
	_, err = s.Replace(ctx, 1, "Alice", "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailConflict)

	// Patch enforces the same rule.
	email := "bob@example.com"
	_, err = s.Patch(ctx, 1, &domain.UserPatch{Email: &email})
	assert.ErrorIs(t, err, domain.ErrEmailConflict)
}

func TestUserStore_DeleteFreesEmailButNotID(t *testing.T) {
	s := seededUserStore(t)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, 2))
	assert.Equal(t, 1, s.Count())

	_, err := s.Get(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Deleted email is reusable, the id is not.
	u, err := s.Create(ctx, "Bob II", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)

	assert.ErrorIs(t, s.Delete(ctx, 2), domain.ErrUserNotFound)
}

func TestUserStore_PatchAppliesOnlyPresentFields(t *testing.T) {
	s := seededUserStore(t)
	ctx := context.Background()

	name := "Alicia"
	u, err := s.Patch(ctx, 1, &domain.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestUserStore_VersionBumpsOnEveryMutation(t *testing.T) {
	s := seededUserStore(t)
	ctx := context.Background()

	v := s.Version()
	_, err := s.Create(ctx, "Carol", "carol@example.com")
	require.NoError(t, err)
	assert.Greater(t, s.Version(), v)

	v = s.Version()
	require.NoError(t, s.Delete(ctx, 3))
	assert.Greater(t, s.Version(), v)

	// Reads do not bump.
	v = s.Version()
	s.List(ctx)
	assert.Equal(t, v, s.Version())
}

func TestUserStore_ListReturnsClones(t *testing.T) {
	s := seededUserStore(t)
	ctx := context.Background()

	users := s.List(ctx)
	users[0].Name = "Mutated"

	fresh, err := s.Get(ctx, users[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", fresh.Name)
}
