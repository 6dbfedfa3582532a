package auth

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// InsecureVerifier accepts any non-empty token. Local development only.
type InsecureVerifier struct{}

func NewInsecureVerifier() InsecureVerifier {
	log.Warnln("auth: insecure verifier enabled, every token is accepted")
	return InsecureVerifier{}
}

func (InsecureVerifier) Verify(_ context.Context, id, token string) error {
	if id == "" || token == "" {
		return ErrInvalidCredentials
	}
	return nil
}
