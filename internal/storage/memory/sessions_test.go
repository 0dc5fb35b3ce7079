package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, "admin", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.Username)
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = s.Get(ctx, "uhs_unknown")
	assert.ErrorIs(t, err, domain.ErrSessionAbsent)
}

// expireSession backdates a stored session past its expiry.
func expireSession(s *SessionStore, id string) {
	if sess, ok := s.sessions.Get(id); ok {
		sess.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

func TestSessionStore_ExpiredReadsAsAbsent(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, "admin", time.Hour)
	require.NoError(t, err)
	expireSession(s, sess.ID)

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionAbsent)

	// The lazy delete dropped the record.
	assert.Equal(t, 0, s.Count())
}

func TestSessionStore_MergeData(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, "admin", time.Hour)
	require.NoError(t, err)

	_, err = s.MergeData(ctx, sess.ID, map[string]any{"lang": "en"})
	require.NoError(t, err)

	merged, err := s.MergeData(ctx, sess.ID, map[string]any{"theme": "dark"})
	require.NoError(t, err)
	assert.Equal(t, "en", merged.Data["lang"])
	assert.Equal(t, "dark", merged.Data["theme"])

	// Later fields win on collision.
	merged, err = s.MergeData(ctx, sess.ID, map[string]any{"theme": "light"})
	require.NoError(t, err)
	assert.Equal(t, "light", merged.Data["theme"])

	_, err = s.MergeData(ctx, "uhs_unknown", map[string]any{"x": 1})
	assert.ErrorIs(t, err, domain.ErrSessionAbsent)
}

func TestSessionStore_DestroyIsIdempotent(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, "admin", time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Destroy(ctx, sess.ID))
	require.NoError(t, s.Destroy(ctx, sess.ID))
	require.NoError(t, s.Destroy(ctx, "uhs_never_existed"))

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionAbsent)
}

// Exercised with -race: readers clone the data map that writers merge
// into, so both paths must share the store lock.
func TestSessionStore_ConcurrentGetAndMerge(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, "admin", time.Hour)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := s.MergeData(ctx, sess.ID, map[string]any{fmt.Sprintf("g%d", g): i}); err != nil {
					t.Errorf("MergeData: %v", err)
					return
				}
			}
		}(g)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := s.Get(ctx, sess.ID); err != nil {
					t.Errorf("Get: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Data, 4)
}

func TestSessionStore_SweepEvictsOnlyExpired(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	live, err := s.Create(ctx, "live", time.Hour)
	require.NoError(t, err)
	dead1, err := s.Create(ctx, "dead1", time.Hour)
	require.NoError(t, err)
	dead2, err := s.Create(ctx, "dead2", time.Hour)
	require.NoError(t, err)
	expireSession(s, dead1.ID)
	expireSession(s, dead2.ID)

	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 1, s.Count())

	_, err = s.Get(ctx, live.ID)
	assert.NoError(t, err)

	assert.Equal(t, 0, s.Sweep())
}
