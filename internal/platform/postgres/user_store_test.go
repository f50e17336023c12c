//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/platform/postgres"
	"github.com/dkovacs/tasknest/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUserStore_Create(t *testing.T) {
	db := getTestDB(t)

	withTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userStore := postgres.NewPostgresUserStore(tx, nil)

		t.Run("successful creation", func(t *testing.T) {
			user, err := domain.NewUser("user-create-ext", "create@example.com")
			require.NoError(t, err)
			require.NoError(t, userStore.Create(ctx, user))

			got, err := userStore.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.ExternalID, got.ExternalID)
			assert.Equal(t, user.Email, got.Email)
			assert.False(t, got.CreatedAt.IsZero())
		})

		t.Run("duplicate external ID", func(t *testing.T) {
			first, err := domain.NewUser("user-dup-ext", "")
			require.NoError(t, err)
			require.NoError(t, userStore.Create(ctx, first))

			second, err := domain.NewUser("user-dup-ext", "")
			require.NoError(t, err)
			err = userStore.Create(ctx, second)
			assert.ErrorIs(t, err, store.ErrExternalIDExists)
		})

		t.Run("invalid user is rejected before SQL", func(t *testing.T) {
			err := userStore.Create(ctx, &domain.User{ID: uuid.New()})
			assert.ErrorIs(t, err, domain.ErrEmptyExternalID)
		})
	})
}

func TestPostgresUserStore_GetByExternalID(t *testing.T) {
	db := getTestDB(t)

	withTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userStore := postgres.NewPostgresUserStore(tx, nil)

		user, err := domain.NewUser("user-lookup-ext", "")
		require.NoError(t, err)
		require.NoError(t, userStore.Create(ctx, user))

		t.Run("found", func(t *testing.T) {
			got, err := userStore.GetByExternalID(ctx, "user-lookup-ext")
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})

		t.Run("missing", func(t *testing.T) {
			_, err := userStore.GetByExternalID(ctx, "never-seen")
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})

		t.Run("missing by ID", func(t *testing.T) {
			_, err := userStore.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})
}
