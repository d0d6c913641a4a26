package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pulse/config"
	domainerrors "pulse/internal/domain/errors"
	mockService "pulse/internal/mocks/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service      usecase.AuthUsecase
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			Operators: []config.OperatorAccount{
				{Email: "ops@example.com", PasswordHash: "$2a$10$hash", Roles: []string{"analyst"}},
			},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAuthService(logger, hasher, tokenService, cfg)

	return authServiceFixtures{
		service:      service,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := createTestAuthService(t)

	f.hasher.EXPECT().Check("s3cret", "$2a$10$hash").Return(true)
	f.tokenService.EXPECT().
		GenerateTokens(uuid.NewSHA1(operatorIDNamespace, []byte("ops@example.com")), []string{"analyst"}).
		Return("access", "refresh", nil)

	pair, err := f.service.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
}

func TestAuthService_Login_EmailIsCaseInsensitive(t *testing.T) {
	f := createTestAuthService(t)

	f.hasher.EXPECT().Check("s3cret", "$2a$10$hash").Return(true)
	f.tokenService.EXPECT().
		GenerateTokens(uuid.NewSHA1(operatorIDNamespace, []byte("ops@example.com")), []string{"analyst"}).
		Return("access", "refresh", nil)

	pair, err := f.service.Login(context.Background(), "  OPS@Example.COM ", "s3cret")
	require.NoError(t, err)
	assert.NotNil(t, pair)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := createTestAuthService(t)

	f.hasher.EXPECT().Check("wrong", "$2a$10$hash").Return(false)

	pair, err := f.service.Login(context.Background(), "ops@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, err)
	assert.Nil(t, pair)
}

func TestAuthService_Login_UnknownOperator(t *testing.T) {
	f := createTestAuthService(t)

	pair, err := f.service.Login(context.Background(), "nobody@example.com", "s3cret")
	require.Error(t, err)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, err)
	assert.Nil(t, pair)
}
