package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/dkovacs/tasknest/internal/domain"
)

// TaskUpdate carries the optional fields of a task update. A nil field is
// left untouched. At least one field must be set; callers validate this
// before reaching the store.
type TaskUpdate struct {
	Content  *string
	Category *string
}

// Progress summarizes a user's task completion.
// Percent is round(100 * Completed / Total), and 0 when the user has no tasks.
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// TaskStore defines the interface for task data persistence.
//
// Every operation is scoped by the owning user's ID: reads only return rows
// owned by ownerID, and mutations only match rows owned by ownerID. A task
// that exists under a different owner behaves exactly like a task that does
// not exist.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser returns all tasks owned by ownerID in insertion order.
	// If category is non-empty the result is restricted to exact matches.
	// Returns an empty slice when nothing matches.
	ListByUser(ctx context.Context, ownerID uuid.UUID, category string) ([]*domain.Task, error)

	// Update applies the non-nil fields of update to the task with the given
	// ID, provided it is owned by ownerID, and returns the updated row.
	// Returns ErrTaskNotFound if no owned row matches.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// SetCompleted sets the completion flag of an owned task and returns the
	// updated row. Content and category are not modified.
	// Returns ErrTaskNotFound if no owned row matches.
	SetCompleted(ctx context.Context, ownerID, taskID uuid.UUID, completed bool) (*domain.Task, error)

	// Delete removes an owned task.
	// Returns ErrTaskNotFound if no owned row matches.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// Progress reports the owner's total and completed task counts.
	Progress(ctx context.Context, ownerID uuid.UUID) (*Progress, error)
}
