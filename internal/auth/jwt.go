package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier accepts HS256 tokens whose subject is the presented id.
type JWTVerifier struct {
	secret []byte
	issuer string
}

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	if secret == "" {
		panic("JWT secret cannot be empty")
	}
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *JWTVerifier) Verify(_ context.Context, id, token string) error {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidCredentials
	}
	if claims.Subject == "" || claims.Subject != id {
		return ErrInvalidCredentials
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs a token for id. Used by tests and the catalog tool.
func IssueToken(secret, issuer, id string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = id
	if issuer != "" {
		claims.Issuer = issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
