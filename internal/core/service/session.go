package service

import (
	"context"
	"time"

	"github.com/yndnr/userhub-go/internal/core/domain"
	"github.com/yndnr/userhub-go/internal/telemetry/logger"
)

// SessionRepository defines the storage interface for session records.
type SessionRepository interface {
	// Create inserts a new session for the given username.
	Create(ctx context.Context, username string, ttl time.Duration) (*domain.Session, error)

	// Get retrieves a live session; expired sessions read as absent.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// MergeData shallow-merges fields into the session data.
	MergeData(ctx context.Context, id string, fields map[string]any) (*domain.Session, error)

	// Destroy removes a session; destroying an absent id is not an error.
	Destroy(ctx context.Context, id string) error

	// Count returns the number of stored sessions.
	Count() int

	// Sweep evicts expired sessions and returns the eviction count.
	Sweep() int
}

// SessionService handles session lifecycle operations.
type SessionService struct {
	repo SessionRepository
	ttl  time.Duration
}

// NewSessionService creates a new SessionService.
// ttl governs both the server-side expiry and the cookie Max-Age.
func NewSessionService(repo SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &SessionService{repo: repo, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create starts a new session for a logged-in user.
func (s *SessionService) Create(ctx context.Context, username string) (*domain.Session, error) {
	return s.repo.Create(ctx, username, s.ttl)
}

// Resolve looks up the session behind a cookie value. A missing, unknown
// or expired identifier yields the same absent outcome.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionAbsent
	}
	return s.repo.Get(ctx, sessionID)
}

// MergeData merges preference fields into an existing session.
func (s *SessionService) MergeData(ctx context.Context, sessionID string, fields map[string]any) (*domain.Session, error) {
	return s.repo.MergeData(ctx, sessionID, fields)
}

// Destroy ends a session. Idempotent.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.repo.Destroy(ctx, sessionID)
}

// Count returns the number of stored sessions.
func (s *SessionService) Count() int {
	return s.repo.Count()
}

// RunSweeper evicts expired sessions on the given interval until the
// context is cancelled. Cookie Max-Age already bounds the client side;
// the sweep keeps a long-lived process from accumulating dead records.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration, log logger.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.repo.Sweep(); n > 0 {
				log.Debug("swept expired sessions", "evicted", n)
			}
		}
	}
}
