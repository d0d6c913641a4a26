package impl

import (
	"context"
	"log/slog"
	"strings"

	"pulse/config"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
)

// operatorIDNamespace makes the derived operator IDs stable across restarts
// so issued tokens survive config reloads.
var operatorIDNamespace = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

type authService struct {
	hasher       service.PasswordHasher
	tokenService service.TokenService
	cfg          *config.Config
	logger       *slog.Logger
}

// NewAuthService creates the dashboard operator authentication service.
// Operator accounts are provisioned statically through configuration.
func NewAuthService(
	logger *slog.Logger,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	cfg *config.Config,
) usecase.AuthUsecase {
	if cfg.Auth == nil {
		cfg.Auth = &config.AuthConfig{}
	}

	return &authService{
		hasher:       hasher,
		tokenService: tokenService,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*usecase.TokenPair, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var account *config.OperatorAccount
	for i := range s.cfg.Auth.Operators {
		if strings.EqualFold(s.cfg.Auth.Operators[i].Email, normalized) {
			account = &s.cfg.Auth.Operators[i]
			break
		}
	}
	if account == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !s.hasher.Check(password, account.PasswordHash) {
		s.logger.Warn("operator login rejected", slog.String("email", normalized))

		return nil, domainerrors.ErrInvalidCredentials
	}

	operatorID := uuid.NewSHA1(operatorIDNamespace, []byte(normalized))
	accessToken, refreshToken, err := s.tokenService.GenerateTokens(operatorID, account.Roles)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue tokens")
	}

	return &usecase.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
