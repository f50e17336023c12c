package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	category := "learning"

	t.Run("valid task with category", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(userID, "Read the pgx docs", &category)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID, "ID should be generated")
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, "Read the pgx docs", task.Content)
		require.NotNil(t, task.Category)
		assert.Equal(t, category, *task.Category)
		assert.False(t, task.Completed, "new tasks start incomplete")
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("valid task without category", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(userID, "Water the plants", nil)
		require.NoError(t, err)
		assert.Nil(t, task.Category)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(userID, "", nil)
		assert.ErrorIs(t, err, domain.ErrTaskContentEmpty)
	})

	t.Run("missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(uuid.Nil, "orphaned", nil)
		assert.ErrorIs(t, err, domain.ErrTaskUserIDEmpty)
	})
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	valid := func() *domain.Task {
		task, err := domain.NewTask(uuid.New(), "content", nil)
		require.NoError(t, err)
		return task
	}

	t.Run("nil ID", func(t *testing.T) {
		t.Parallel()

		task := valid()
		task.ID = uuid.Nil
		assert.ErrorIs(t, task.Validate(), domain.ErrTaskIDEmpty)
	})

	t.Run("nil owner", func(t *testing.T) {
		t.Parallel()

		task := valid()
		task.UserID = uuid.Nil
		assert.ErrorIs(t, task.Validate(), domain.ErrTaskUserIDEmpty)
	})
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("user_2abc123", "someone@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "user_2abc123", user.ExternalID)
		assert.Equal(t, "someone@example.com", user.Email)
	})

	t.Run("empty email is allowed", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("user_2abc123", "")
		require.NoError(t, err)
		assert.Empty(t, user.Email)
	})

	t.Run("empty external ID", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("", "someone@example.com")
		assert.ErrorIs(t, err, domain.ErrEmptyExternalID)
	})
}
