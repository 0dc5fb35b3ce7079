package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured code.
// The status digits embedded in the code (e.g. "UH-USER-4090") drive the
// HTTP mapping in the server layer; handlers never pick status codes.
type DomainError struct {
	Code    string // Error code (e.g. "UH-USER-4040")
	Message string // Human-readable message, safe to return to clients
	Details string // Optional additional details
	Cause   error  // Underlying error, never returned to clients
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is support; two domain errors match on code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: details, Cause: e.Cause}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: e.Details, Cause: cause}
}

// AsDomainError extracts a DomainError from an error chain, if present.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// User errors.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = NewDomainError("UH-USER-4040", "User not found")

	// ErrEmailConflict indicates the email is already taken by a live user.
	ErrEmailConflict = NewDomainError("UH-USER-4090", "Email already exists")

	// ErrUserValidation indicates required user fields are missing or malformed.
	ErrUserValidation = NewDomainError("UH-USER-4001", "Name and email are required")
)

// Session and authentication errors.
var (
	// ErrSessionAbsent indicates the session does not exist or has expired.
	// Handlers map both cases to the same unauthenticated outcome so a probe
	// cannot distinguish an expired session from one that never existed.
	ErrSessionAbsent = NewDomainError("UH-SESS-4040", "session absent")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = NewDomainError("UH-AUTH-4010", "Invalid credentials")

	// ErrNotAuthenticated indicates a missing or unresolvable session cookie.
	ErrNotAuthenticated = NewDomainError("UH-AUTH-4011", "Not authenticated")

	// ErrForbidden indicates a bad scheme or invalid token on a bearer route.
	ErrForbidden = NewDomainError("UH-AUTH-4030", "Invalid or malformed bearer token")
)

// Transport and system errors.
var (
	// ErrRouteNotFound indicates no route matched the request.
	ErrRouteNotFound = NewDomainError("UH-ROUTE-4040", "Not Found")

	// ErrMalformedBody indicates the request body could not be parsed.
	ErrMalformedBody = NewDomainError("UH-BODY-4000", "Invalid JSON body")

	// ErrInternal indicates an uncaught failure; details stay server-side.
	ErrInternal = NewDomainError("UH-SYS-5000", "Internal server error")
)
