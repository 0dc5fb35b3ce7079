package service

import (
	"context"
	"time"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

// UserRepository defines the storage interface for the user collection.
type UserRepository interface {
	// List returns all live users in insertion order.
	List(ctx context.Context) []*domain.User

	// Get retrieves a user by id.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Create assigns the next id and inserts a new user.
	Create(ctx context.Context, name, email string) (*domain.User, error)

	// Replace overwrites all fields of an existing user.
	Replace(ctx context.Context, id int64, name, email string) (*domain.User, error)

	// Patch applies only the fields present in the patch.
	Patch(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error)

	// Delete removes a user by id.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of live users.
	Count() int

	// Version returns a counter that changes on every mutation.
	Version() uint64

	// LastModified returns the time of the most recent mutation.
	LastModified() time.Time
}

// CollectionState is a point-in-time view of the user collection,
// consumed by the cache validator.
type CollectionState struct {
	Version      uint64
	Count        int
	LastModified time.Time
}

// UserService handles user collection operations.
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users and the collection count.
func (s *UserService) List(ctx context.Context) ([]*domain.User, int) {
	users := s.repo.List(ctx)
	return users, len(users)
}

// Get retrieves a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.Get(ctx, id)
}

// Create validates required fields and inserts a new user.
func (s *UserService) Create(ctx context.Context, name, email string) (*domain.User, error) {
	candidate := domain.User{Name: name, Email: email}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, name, email)
}

// Replace validates required fields and fully replaces an existing user.
func (s *UserService) Replace(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	candidate := domain.User{Name: name, Email: email}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Replace(ctx, id, name, email)
}

// Patch applies a partial update.
func (s *UserService) Patch(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	return s.repo.Patch(ctx, id, patch)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// State returns the current collection state for cache validation.
func (s *UserService) State() CollectionState {
	return CollectionState{
		Version:      s.repo.Version(),
		Count:        s.repo.Count(),
		LastModified: s.repo.LastModified(),
	}
}
