package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/generation"
	"github.com/dkovacs/tasknest/internal/store"
)

// TaskService provides owner-scoped task operations on top of the task
// store. Ownership is enforced by the store predicates; the service never
// loads a task without the requesting owner's ID.
type TaskService struct {
	taskStore store.TaskStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	generator generation.Generator,
	logger *slog.Logger,
) *TaskService {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskService")
	}
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for TaskService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskService")
	}

	return &TaskService{
		taskStore: taskStore,
		generator: generator,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// GenerateSuggestions asks the generation backend for task suggestions on a
// topic. Nothing is persisted; the caller decides which suggestions become
// tasks.
func (s *TaskService) GenerateSuggestions(ctx context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrValidation)
	}

	suggestions, err := s.generator.GenerateTasks(ctx, topic)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// CreateTask creates a task owned by ownerID.
func (s *TaskService) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	content string,
	category *string,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, content, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, &TaskServiceError{Operation: "create_task", Err: err}
	}

	s.logger.DebugContext(ctx, "task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// ListTasks returns all of ownerID's tasks, optionally restricted to a
// category. An empty category means no restriction.
func (s *TaskService) ListTasks(
	ctx context.Context,
	ownerID uuid.UUID,
	category string,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByUser(ctx, ownerID, category)
	if err != nil {
		return nil, &TaskServiceError{Operation: "list_tasks", Err: err}
	}
	return tasks, nil
}

// UpdateTask applies a partial update to an owned task and returns the
// updated row. At least one field must be provided.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	if update.Content == nil && update.Category == nil {
		return nil, ErrEmptyUpdate
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}

	task, err := s.taskStore.Update(ctx, ownerID, taskID, update)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, &TaskServiceError{Operation: "update_task", Err: err}
	}
	return task, nil
}

// SetTaskCompleted marks an owned task complete or incomplete and returns
// the updated row.
func (s *TaskService) SetTaskCompleted(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	completed bool,
) (*domain.Task, error) {
	task, err := s.taskStore.SetCompleted(ctx, ownerID, taskID, completed)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, &TaskServiceError{Operation: "set_task_completed", Err: err}
	}
	return task, nil
}

// DeleteTask removes an owned task.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, ownerID, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return &TaskServiceError{Operation: "delete_task", Err: err}
	}

	s.logger.DebugContext(ctx, "task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// Progress reports ownerID's completion counts.
func (s *TaskService) Progress(ctx context.Context, ownerID uuid.UUID) (*store.Progress, error) {
	progress, err := s.taskStore.Progress(ctx, ownerID)
	if err != nil {
		return nil, &TaskServiceError{Operation: "progress", Err: err}
	}
	return progress, nil
}
