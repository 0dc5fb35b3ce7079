package handler

import (
	"fmt"
	"time"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

// listUsersResponse is the body for GET /users.
type listUsersResponse struct {
	Users []*domain.User `json:"users"`
	Count int            `json:"count"`
}

// loginResponse is the body for a successful POST /login.
type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// messageResponse is a generic {message} body.
type messageResponse struct {
	Message string `json:"message"`
}

// sessionResponse is the body for GET /session and GET /profile.
type sessionResponse struct {
	Username  string         `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Data      map[string]any `json:"data,omitempty"`
}

// preferencesResponse is the body for POST /preferences.
type preferencesResponse struct {
	Message     string         `json:"message"`
	Preferences map[string]any `json:"preferences"`
}

// statsResponse is the body for GET /api/stats.
type statsResponse struct {
	Users             int    `json:"users"`
	Sessions          int    `json:"sessions"`
	CollectionVersion uint64 `json:"collection_version"`
	ServerVersion     string `json:"server_version"`
}

// stringField extracts a string-typed field from a parsed body.
// Returns ok=false when the field is absent or not a string.
func stringField(body map[string]any, key string) (string, bool) {
	v, present := body[key]
	if !present {
		return "", false
	}
	s, isString := v.(string)
	return s, isString
}

// userFields checks the expected body shape for POST and PUT /users:
// name and email must both be present, string-typed and non-empty.
func userFields(body map[string]any) (name, email string, err error) {
	name, nameOK := stringField(body, "name")
	email, emailOK := stringField(body, "email")
	if !nameOK || !emailOK || name == "" || email == "" {
		return "", "", domain.ErrUserValidation
	}
	return name, email, nil
}

// userPatch checks the expected body shape for PATCH /users/{id}:
// only supplied fields change, and supplied fields must be strings.
func userPatch(body map[string]any) (*domain.UserPatch, error) {
	patch := &domain.UserPatch{}
	for _, key := range []string{"name", "email"} {
		if _, present := body[key]; !present {
			continue
		}
		s, isString := stringField(body, key)
		if !isString || s == "" {
			return nil, domain.NewDomainError("UH-USER-4001",
				fmt.Sprintf("Field %q must be a non-empty string", key))
		}
		switch key {
		case "name":
			patch.Name = &s
		case "email":
			patch.Email = &s
		}
	}
	return patch, nil
}

// credentials checks the expected body shape for POST /login. Any shape
// problem is indistinguishable from wrong credentials.
func credentials(body map[string]any) (username, password string, err error) {
	username, userOK := stringField(body, "username")
	password, passOK := stringField(body, "password")
	if !userOK || !passOK {
		return "", "", domain.ErrInvalidCredentials
	}
	return username, password, nil
}
