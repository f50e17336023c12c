package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/dkovacs/tasknest/internal/platform/postgres"
	"github.com/dkovacs/tasknest/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantIs  error
	}{
		{
			name:   "nil stays nil",
			err:    nil,
			wantIs: nil,
		},
		{
			name:   "no rows maps to not found",
			err:    sql.ErrNoRows,
			wantIs: store.ErrNotFound,
		},
		{
			name:   "unique violation maps to duplicate",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: "users_external_id_key"},
			wantIs: store.ErrDuplicate,
		},
		{
			name:   "foreign key violation maps to invalid entity",
			err:    &pgconn.PgError{Code: "23503", ConstraintName: "tasks_user_id_fkey"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not null violation maps to invalid entity",
			err:    &pgconn.PgError{Code: "23502", ColumnName: "content"},
			wantIs: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := postgres.MapError(tt.err)
			if tt.wantIs == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		assert.Same(t, cause, postgres.MapError(cause))
	})

	t.Run("wrapped pg errors are still detected", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"})
		assert.ErrorIs(t, postgres.MapError(wrapped), store.ErrDuplicate)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgres.IsUniqueViolation(errors.New("plain")))
	assert.False(t, postgres.IsUniqueViolation(nil))
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, postgres.CheckRowsAffected(fakeResult{rows: 1}, "task"))
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		t.Parallel()

		err := postgres.CheckRowsAffected(fakeResult{rows: 0}, "task")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "task")
	})

	t.Run("result error propagates", func(t *testing.T) {
		t.Parallel()

		err := postgres.CheckRowsAffected(fakeResult{err: errors.New("driver closed")}, "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, postgres.CheckRowsAffected(nil, "task"))
	})
}
