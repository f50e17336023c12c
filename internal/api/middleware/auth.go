package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dkovacs/tasknest/internal/api/shared"
	"github.com/dkovacs/tasknest/internal/redact"
	"github.com/dkovacs/tasknest/internal/service"
	"github.com/dkovacs/tasknest/internal/service/auth"
)

// AuthMiddleware verifies provider bearer tokens and resolves the caller to
// a local user, creating the user row on first contact.
type AuthMiddleware struct {
	verifier auth.Verifier
	identity *service.IdentityService
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	verifier auth.Verifier,
	identity *service.IdentityService,
	logger *slog.Logger,
) *AuthMiddleware {
	if verifier == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("verifier cannot be nil for AuthMiddleware")
	}
	if identity == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("identity service cannot be nil for AuthMiddleware")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthMiddleware")
	}

	return &AuthMiddleware{
		verifier: verifier,
		identity: identity,
		logger:   logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the bearer token from the Authorization header,
// resolves the local user, and adds the user ID to the request context.
//
// Every token failure maps to the same 401 body so callers cannot probe the
// difference between a missing, malformed, and expired token. Storage
// failures during resolution are server errors, never 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := m.verifier.Verify(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) ||
				errors.Is(err, auth.ErrInvalidToken) ||
				errors.Is(err, auth.ErrMissingToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
				return
			}
			m.logger.Error("failed to verify token", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		user, err := m.identity.Resolve(r.Context(), identity.ExternalID, identity.Email)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Authentication error", err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
