package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

func TestAuthService_VerifyCredentials(t *testing.T) {
	svc, err := NewAuthService(AuthConfig{Username: "admin", Password: "password"})
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyCredentials("admin", "password"))

	// Wrong username and wrong password are indistinguishable.
	assert.ErrorIs(t, svc.VerifyCredentials("admin", "wrong"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyCredentials("root", "password"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyCredentials("", ""), domain.ErrInvalidCredentials)
}

func TestAuthService_VerifyAPIToken(t *testing.T) {
	svc, err := NewAuthService(AuthConfig{
		Username: "admin",
		Password: "password",
		APIToken: "uha_stats_token",
	})
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyAPIToken("uha_stats_token"))
	assert.ErrorIs(t, svc.VerifyAPIToken("uha_wrong"), domain.ErrForbidden)
	assert.ErrorIs(t, svc.VerifyAPIToken(""), domain.ErrForbidden)
}

func TestAuthService_NoAPITokenDisablesBearer(t *testing.T) {
	svc, err := NewAuthService(AuthConfig{Username: "admin", Password: "password"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyAPIToken("anything"), domain.ErrForbidden)
}
