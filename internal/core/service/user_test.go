package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/userhub-go/internal/core/domain"
	"github.com/yndnr/userhub-go/internal/storage/memory"
)

func testUserService(t *testing.T) *UserService {
	t.Helper()
	store := memory.NewUserStore()
	err := store.Seed(context.Background(), []*domain.User{
		{Name: "Alice", Email: "alice@example.com"},
	})
	require.NoError(t, err)
	return NewUserService(store)
}

func TestUserService_CreateValidatesFirst(t *testing.T) {
	svc := testUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "x@example.com")
	assert.ErrorIs(t, err, domain.ErrUserValidation)

	_, err = svc.Create(ctx, "X", "")
	assert.ErrorIs(t, err, domain.ErrUserValidation)

	u, err := svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
}

func TestUserService_ReplaceValidatesFirst(t *testing.T) {
	svc := testUserService(t)
	ctx := context.Background()

	// Validation precedes existence: a bad body on an unknown id is 400
	// territory, not 404.
	_, err := svc.Replace(ctx, 999, "", "")
	assert.ErrorIs(t, err, domain.ErrUserValidation)

	_, err = svc.Replace(ctx, 999, "Ghost", "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_State(t *testing.T) {
	svc := testUserService(t)
	ctx := context.Background()

	before := svc.State()
	assert.Equal(t, 1, before.Count)

	_, err := svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	after := svc.State()
	assert.Equal(t, 2, after.Count)
	assert.Greater(t, after.Version, before.Version)
	assert.False(t, after.LastModified.Before(before.LastModified))
}

func TestUserService_ListCountsWhatItReturns(t *testing.T) {
	svc := testUserService(t)

	users, count := svc.List(context.Background())
	assert.Len(t, users, count)
	assert.Equal(t, 1, count)
}
