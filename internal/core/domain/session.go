package domain

import (
	"time"

	"github.com/yndnr/userhub-go/pkg/token"
)

// DefaultSessionTTL matches the Max-Age the server puts on session cookies.
const DefaultSessionTTL = time.Hour

// Session is the server-side record proving a successful login. It is
// referenced only through the opaque identifier carried in a cookie, never
// through a client-supplied internal index.
type Session struct {
	// ID is the opaque, cryptographically unpredictable session identifier.
	ID string `json:"session_id"`

	// Username is the account the session was created for.
	Username string `json:"username"`

	// CreatedAt is the session creation time.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the server-side expiry; it mirrors the cookie Max-Age.
	ExpiresAt time.Time `json:"expires_at"`

	// Data holds preference values. It is only ever shallow-merged,
	// never wholesale replaced.
	Data map[string]any `json:"data"`
}

// NewSession creates a session with a fresh identifier and empty data.
func NewSession(username string, ttl time.Duration) (*Session, error) {
	id, err := token.NewSessionID()
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}

	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	now := time.Now()
	return &Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Data:      make(map[string]any),
	}, nil
}

// IsExpired reports whether the session has passed its server-side expiry.
func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// Merge shallow-merges fields into the session data, overwriting on key
// collision. The data map itself is never replaced.
func (s *Session) Merge(fields map[string]any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	for k, v := range fields {
		s.Data[k] = v
	}
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (s *Session) Clone() *Session {
	c := *s
	c.Data = make(map[string]any, len(s.Data))
	for k, v := range s.Data {
		c.Data[k] = v
	}
	return &c
}
