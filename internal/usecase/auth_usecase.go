package usecase

import (
	"context"
)

// TokenPair is the result of a successful dashboard login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthUsecase authenticates dashboard operators. Accounts are provisioned
// statically through configuration; this service does not manage storefront
// customers.
type AuthUsecase interface {
	// Login verifies the operator credentials and issues a token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)
}
