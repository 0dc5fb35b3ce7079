// Package token generates and verifies opaque credential tokens.
//
// Tokens are raw random bytes, Base64 RawURL encoded, and carry a short
// type prefix so they can be recognized (and redacted) in logs.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Token type prefixes.
const (
	// SessionPrefix marks a session identifier token.
	SessionPrefix = "uhs_"

	// APIPrefix marks a long-lived API access token.
	APIPrefix = "uha_"
)

// DefaultLength is the default token entropy in bytes.
const DefaultLength = 32

// NewSessionID generates a cryptographically unpredictable session identifier.
func NewSessionID() (string, error) {
	return generate(SessionPrefix, DefaultLength)
}

// NewAPIToken generates a new API access token.
func NewAPIToken() (string, error) {
	return generate(APIPrefix, DefaultLength)
}

func generate(prefix string, length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash computes the hex-encoded SHA-256 hash of a token for storage.
func Hash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// Verify compares a token against a stored hash in constant time.
func Verify(tok, expectedHash string) bool {
	actual := Hash(tok)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expectedHash)) == 1
}

// IsSessionID reports whether a string looks like a session identifier.
func IsSessionID(s string) bool {
	return strings.HasPrefix(s, SessionPrefix)
}
