package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskContentEmpty is returned when a task's content is empty.
	ErrTaskContentEmpty = errors.New("task content cannot be empty")
)

// Task represents a single to-do item owned by exactly one user.
// Category is optional and nil when the task is uncategorized.
// The owner reference is fixed at creation time; every store operation
// that touches a task is additionally scoped by the owner's ID.
type Task struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTask creates a new Task with the given owner and content.
// It generates a new UUID for the task ID and sets the creation timestamp.
// Category may be nil. Returns an error if validation fails.
func NewTask(userID uuid.UUID, content string, category *string) (*Task, error) {
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		Category:  category,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Content == "" {
		return ErrTaskContentEmpty
	}

	return nil
}
