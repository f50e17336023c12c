package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/mocks"
	"github.com/dkovacs/tasknest/internal/service"
	"github.com/dkovacs/tasknest/internal/service/auth"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func runAuthenticated(
	t *testing.T,
	verifier auth.Verifier,
	users *mocks.MockUserStore,
	authHeader string,
) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	identity := service.NewIdentityService(users, testLogger())
	m := NewAuthMiddleware(verifier, identity, testLogger())

	var gotUserID uuid.UUID
	var called bool
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotUserID, called
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	validVerifier := func() *mocks.MockVerifier {
		return &mocks.MockVerifier{
			Identity: &auth.Identity{ExternalID: "ext_123", Email: "a@b.c"},
		}
	}

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		rec, _, called := runAuthenticated(t, validVerifier(), mocks.NewMockUserStore(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		rec, _, called := runAuthenticated(t, validVerifier(), mocks.NewMockUserStore(), "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		verifier := &mocks.MockVerifier{Err: auth.ErrInvalidToken}
		rec, _, called := runAuthenticated(t, verifier, mocks.NewMockUserStore(), "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		verifier := &mocks.MockVerifier{Err: auth.ErrExpiredToken}
		rec, _, called := runAuthenticated(t, verifier, mocks.NewMockUserStore(), "Bearer old")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("valid token creates the user and passes the ID along", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		rec, gotUserID, called := runAuthenticated(t, validVerifier(), users, "Bearer good")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)

		created, err := users.GetByExternalID(context.Background(), "ext_123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, gotUserID)
		assert.Equal(t, "a@b.c", created.Email)
	})

	t.Run("valid token reuses the existing user", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		existing, err := domain.NewUser("ext_123", "a@b.c")
		require.NoError(t, err)
		users.Seed(existing)

		_, gotUserID, called := runAuthenticated(t, validVerifier(), users, "Bearer good")
		assert.True(t, called)
		assert.Equal(t, existing.ID, gotUserID)
	})

	t.Run("storage failure is 500, not 401", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		users.GetByExternalIDFn = func(ctx context.Context, externalID string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		}
		rec, _, called := runAuthenticated(t, validVerifier(), users, "Bearer good")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, called)
	})
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Internal server error", decodeMessage(t, rec))
}
