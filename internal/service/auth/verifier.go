// Package auth verifies the bearer tokens issued by the external identity
// provider. Token issuance, refresh, and credential storage all live with
// the provider; this package only establishes who is calling.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkovacs/tasknest/internal/config"
)

// Identity is the provider-side identity carried in a verified token.
type Identity struct {
	// ExternalID is the provider's stable subject identifier.
	ExternalID string

	// Email is the email claim if the provider included one, otherwise "".
	Email string
}

// Verifier validates bearer tokens and extracts the caller's identity.
type Verifier interface {
	// Verify parses and validates the token string, returning the identity
	// it asserts. Returns ErrExpiredToken or ErrInvalidToken on failure.
	Verify(ctx context.Context, tokenString string) (*Identity, error)
}

// hmacVerifier validates HMAC-SHA256 signed tokens against a shared secret.
type hmacVerifier struct {
	signingKey []byte
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration    // Allowed time difference to handle clock drift
}

// tokenClaims is the claim set expected from the identity provider.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Ensure hmacVerifier implements Verifier interface
var _ Verifier = (*hmacVerifier)(nil)

// NewVerifier creates a Verifier for HMAC-SHA256 signed provider tokens.
func NewVerifier(cfg config.AuthConfig) (Verifier, error) {
	if len(cfg.TokenSecret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 characters")
	}

	return &hmacVerifier{
		signingKey: []byte(cfg.TokenSecret),
		timeFunc:   time.Now,
		clockSkew:  2 * time.Minute,
	}, nil
}

// Verify implements Verifier.Verify.
func (v *hmacVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	return &Identity{
		ExternalID: claims.Subject,
		Email:      claims.Email,
	}, nil
}
