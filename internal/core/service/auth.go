package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/userhub-go/internal/core/domain"
	"github.com/yndnr/userhub-go/pkg/token"
)

// AuthService verifies login credentials and bearer API tokens.
//
// Credentials come from configuration; the plaintext password is hashed
// once at construction and only the bcrypt hash is kept in memory.
type AuthService struct {
	username     string
	passwordHash []byte
	apiTokenHash string // hex SHA-256, empty disables the bearer route
}

// AuthConfig carries the credential material for NewAuthService.
type AuthConfig struct {
	Username string
	Password string
	APIToken string
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}

	s := &AuthService{
		username:     cfg.Username,
		passwordHash: hash,
	}
	if cfg.APIToken != "" {
		s.apiTokenHash = token.Hash(cfg.APIToken)
	}
	return s, nil
}

// VerifyCredentials checks a username/password pair.
// Wrong username and wrong password produce the same error.
func (s *AuthService) VerifyCredentials(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil

	if !userOK || !passOK {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// VerifyAPIToken checks a bearer token against the configured API token.
func (s *AuthService) VerifyAPIToken(tok string) error {
	if s.apiTokenHash == "" || tok == "" {
		return domain.ErrForbidden
	}
	if !token.Verify(tok, s.apiTokenHash) {
		return domain.ErrForbidden
	}
	return nil
}
