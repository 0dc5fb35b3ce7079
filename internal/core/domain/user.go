// Package domain defines the core domain models for UserHub.
//
// Domain models are pure value objects without IO dependencies or
// framework coupling.
package domain

// User is a resource record addressable by integer id.
//
// IDs are assigned by the resource store, monotonically increasing, and
// never reused within a process lifetime. Email is unique across all live
// users at every observation point.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks required fields for create and full-replace operations.
func (u *User) Validate() error {
	if u.Name == "" || u.Email == "" {
		return ErrUserValidation
	}
	return nil
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// Empty reports whether the patch changes nothing.
func (p *UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply overwrites the fields present in the patch.
func (p *UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}
