package auth

import (
	"testing"
	"time"

	"pulse/config"
	domainerrors "pulse/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, []string{"analyst", "admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"analyst", "admin"}, claims.Roles)
	assert.Equal(t, tokenTypeAccess, claims.Type)
}

func TestJWTService_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestJWTService(t)

	_, refresh, err := svc.GenerateTokens(uuid.New(), []string{"analyst"})
	require.NoError(t, err)

	// Refresh tokens are signed with a different secret and carry a
	// different type claim; both must fail access validation.
	_, err = svc.ValidateAccessToken(refresh)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	access, _, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	tampered := access[:len(access)-2] + "xx"
	_, err = svc.ValidateAccessToken(tampered)
	require.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.accessTTL = -time.Minute

	access, _, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	svc := newTestJWTService(t)

	assert.Equal(t, refreshTokenTTL, svc.GetRefreshTokenDuration())
}
