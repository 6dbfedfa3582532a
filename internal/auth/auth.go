// Package auth verifies the (id, token) pair a client presents in its Basic
// Authorization header against an external identity provider.
package auth

import (
	"alcyxob/fitness-tracker/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

//go:generate mockgen -source=$GOFILE -destination=mock_auth.go -package=auth

// ErrInvalidCredentials means the provider rejected the token for this id.
// Any other error from Verify is an infrastructure failure.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenVerifier checks that token was issued to the identity id.
type TokenVerifier interface {
	Verify(ctx context.Context, id, token string) error
}

// NewVerifier builds the verifier selected by cfg.Provider.
func NewVerifier(cfg config.AuthConfig) (TokenVerifier, error) {
	switch cfg.Provider {
	case config.ProviderFacebook:
		return NewFacebookVerifier(cfg.Facebook, &http.Client{Timeout: cfg.Facebook.Timeout}), nil
	case config.ProviderJWT:
		return NewJWTVerifier(cfg.JWT.Secret, cfg.JWT.Issuer), nil
	case config.ProviderInsecure:
		return NewInsecureVerifier(), nil
	default:
		return nil, fmt.Errorf("unknown auth provider [%s]", cfg.Provider)
	}
}
