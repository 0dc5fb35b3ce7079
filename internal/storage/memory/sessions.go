package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/userhub-go/internal/core/domain"
	"github.com/yndnr/userhub-go/pkg/cmap"
)

// SessionStore owns session records keyed by opaque session identifiers.
// It is independent of the user store.
type SessionStore struct {
	sessions *cmap.Map[*domain.Session]

	// mu serializes all access to stored records. The sharded map alone
	// only protects its buckets; Clone reads the same data map that
	// MergeData mutates, so both sides must hold the lock.
	mu sync.Mutex
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: cmap.New[*domain.Session](),
	}
}

// Create inserts a new session for the given username and returns it.
func (s *SessionStore) Create(_ context.Context, username string, ttl time.Duration) (*domain.Session, error) {
	sess, err := domain.NewSession(username, ttl)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions.Set(sess.ID, sess)
	s.mu.Unlock()

	return sess.Clone(), nil
}

// Get retrieves a session by identifier. Expired sessions read as absent
// and are dropped lazily.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionAbsent
	}
	if sess.IsExpired() {
		s.sessions.Delete(id)
		return nil, domain.ErrSessionAbsent
	}
	return sess.Clone(), nil
}

// MergeData shallow-merges fields into the session's data map.
func (s *SessionStore) MergeData(_ context.Context, id string, fields map[string]any) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(id)
	if !ok || sess.IsExpired() {
		return nil, domain.ErrSessionAbsent
	}

	sess.Merge(fields)
	return sess.Clone(), nil
}

// Destroy removes a session. Destroying an absent id is not an error.
func (s *SessionStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	s.sessions.Delete(id)
	s.mu.Unlock()
	return nil
}

// Count returns the number of stored sessions, expired ones included
// until the next sweep.
func (s *SessionStore) Count() int {
	return s.sessions.Len()
}

// Sweep removes expired sessions and returns how many were evicted.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	s.sessions.Range(func(id string, sess *domain.Session) bool {
		if sess.IsExpired() {
			expired = append(expired, id)
		}
		return true
	})

	for _, id := range expired {
		s.sessions.Delete(id)
	}
	return len(expired)
}
