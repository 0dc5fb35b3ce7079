package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

// UserStore owns the User collection.
//
// Users are kept in insertion order. IDs are assigned by the store,
// strictly increasing, and never reused after a delete. All mutation
// funnels through the store's methods under one mutex.
type UserStore struct {
	mu       sync.Mutex
	users    []*domain.User
	byEmail  map[string]int64 // email -> id, live users only
	nextID   int64
	version  uint64
	modified time.Time
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byEmail:  make(map[string]int64),
		nextID:   1,
		modified: time.Now(),
	}
}

// Seed inserts initial users, assigning ids as a regular create would.
// Seeding fails on duplicate emails like any other insert.
func (s *UserStore) Seed(ctx context.Context, users []*domain.User) error {
	for _, u := range users {
		if _, err := s.Create(ctx, u.Name, u.Email); err != nil {
			return err
		}
	}
	return nil
}

// List returns all live users in insertion order.
func (s *UserStore) List(_ context.Context) []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// Get retrieves a user by id.
func (s *UserStore) Get(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

// Create assigns the next id and appends a new user.
// The email uniqueness check and the insert share the critical section.
func (s *UserStore) Create(_ context.Context, name, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return nil, domain.ErrEmailConflict
	}

	u := &domain.User{ID: s.nextID, Name: name, Email: email}
	s.nextID++
	s.users = append(s.users, u)
	s.byEmail[email] = u.ID
	s.bump()

	return u.Clone(), nil
}

// Replace overwrites all fields of an existing user; the id is unchanged.
// A conflict is reported only when the email belongs to a different id.
func (s *UserStore) Replace(_ context.Context, id int64, name, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if owner, taken := s.byEmail[email]; taken && owner != id {
		return nil, domain.ErrEmailConflict
	}

	delete(s.byEmail, u.Email)
	u.Name = name
	u.Email = email
	s.byEmail[email] = id
	s.bump()

	return u.Clone(), nil
}

// Patch applies only the fields present in the patch.
// A patched email is held to the same conflict rule as create and replace.
func (s *UserStore) Patch(_ context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		if owner, taken := s.byEmail[*patch.Email]; taken && owner != id {
			return nil, domain.ErrEmailConflict
		}
		delete(s.byEmail, u.Email)
		s.byEmail[*patch.Email] = id
	}

	patch.Apply(u)
	s.bump()

	return u.Clone(), nil
}

// Delete removes a user. The id is never handed out again.
func (s *UserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			delete(s.byEmail, u.Email)
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.bump()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// Count returns the number of live users.
func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Version returns a counter that changes on every mutation.
// The cache validator derives entity tags from it.
func (s *UserStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// LastModified returns the time of the most recent mutation.
func (s *UserStore) LastModified() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}

// find returns the live user with the given id. Caller holds the lock.
func (s *UserStore) find(id int64) *domain.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// bump records a mutation. Caller holds the lock.
func (s *UserStore) bump() {
	s.version++
	s.modified = time.Now()
}
