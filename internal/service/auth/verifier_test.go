package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacs/tasknest/internal/config"
)

const testSecret = "test-secret-value-that-is-32-chars!!"

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()
		v, err := NewVerifier(config.AuthConfig{TokenSecret: "too-short"})
		assert.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("accepts a 32+ character secret", func(t *testing.T) {
		t.Parallel()
		v, err := NewVerifier(config.AuthConfig{TokenSecret: testSecret})
		require.NoError(t, err)
		assert.NotNil(t, v)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v, err := NewVerifier(config.AuthConfig{TokenSecret: testSecret})
	require.NoError(t, err)

	t.Run("valid token yields identity with email", func(t *testing.T) {
		t.Parallel()
		tokenString := signToken(t, testSecret, tokenClaims{
			Email: "person@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "ext_abc123",
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		identity, err := v.Verify(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, "ext_abc123", identity.ExternalID)
		assert.Equal(t, "person@example.com", identity.Email)
	})

	t.Run("email claim is optional", func(t *testing.T) {
		t.Parallel()
		tokenString := signToken(t, testSecret, jwt.RegisteredClaims{
			Subject:   "ext_no_email",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		identity, err := v.Verify(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, "ext_no_email", identity.ExternalID)
		assert.Empty(t, identity.Email)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		identity, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
		assert.Nil(t, identity)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		tokenString := signToken(t, testSecret, jwt.RegisteredClaims{
			Subject:   "ext_expired",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		identity, err := v.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Nil(t, identity)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()
		tokenString := signToken(t, "another-secret-that-is-32-chars-long", jwt.RegisteredClaims{
			Subject:   "ext_forged",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		identity, err := v.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, identity)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		tokenString := signToken(t, testSecret, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		identity, err := v.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, identity)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		identity, err := v.Verify(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, identity)
	})
}
