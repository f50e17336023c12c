package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/platform/logger"
	"github.com/dkovacs/tasknest/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// Every query predicate includes user_id, so a task under a different owner
// is indistinguishable from a missing task at this layer already.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// taskColumns is the column list shared by every SELECT/RETURNING in this file.
const taskColumns = "id, user_id, content, category, completed, created_at"

// scanTask reads one task row. Category arrives as a nullable column.
func scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	var category sql.NullString

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Content,
		&category,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if category.Valid {
		task.Category = &category.String
	}
	return &task, nil
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, content, category, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Content,
		task.Category,
		task.Completed,
		task.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// ListByUser implements store.TaskStore.ListByUser
// It retrieves all tasks owned by ownerID, optionally restricted to an exact
// category match, in insertion order.
func (s *PostgresTaskStore) ListByUser(
	ctx context.Context,
	ownerID uuid.UUID,
	category string,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	args := []any{ownerID}

	if category != "" {
		query = `
			SELECT ` + taskColumns + `
			FROM tasks
			WHERE user_id = $1 AND category = $2
			ORDER BY created_at, id
		`
		args = append(args, category)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var cat sql.NullString

		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Content,
			&cat,
			&task.Completed,
			&task.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}

		if cat.Valid {
			task.Category = &cat.String
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks",
		slog.String("user_id", ownerID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// Only the non-nil fields of update are applied; COALESCE keeps the stored
// value where the caller supplied nothing.
// Returns store.ErrTaskNotFound if no row matches both taskID and ownerID.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET content = COALESCE($1, content),
		    category = COALESCE($2, category)
		WHERE id = $3 AND user_id = $4
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(
		ctx,
		query,
		update.Content,
		update.Category,
		taskID,
		ownerID,
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, MapError(err)
	}

	log.Info("task updated successfully",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// SetCompleted implements store.TaskStore.SetCompleted
// Returns store.ErrTaskNotFound if no row matches both taskID and ownerID.
func (s *PostgresTaskStore) SetCompleted(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	completed bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET completed = $1
		WHERE id = $2 AND user_id = $3
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, completed, taskID, ownerID))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for completion update",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to set task completion",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, MapError(err)
	}

	log.Info("task completion updated",
		slog.String("task_id", taskID.String()),
		slog.Bool("completed", completed))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no row matches both taskID and ownerID.
func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found for delete",
			slog.String("task_id", taskID.String()),
			slog.String("user_id", ownerID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// Progress implements store.TaskStore.Progress
// The counts come from a single aggregate query; the percentage is computed
// here so the rounding rule lives in one place.
func (s *PostgresTaskStore) Progress(
	ctx context.Context,
	ownerID uuid.UUID,
) (*store.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM tasks
		WHERE user_id = $1
	`

	var progress store.Progress
	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&progress.Total,
		&progress.Completed,
	)
	if err != nil {
		log.Error("failed to compute task progress",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}

	if progress.Total > 0 {
		progress.Percent = int(math.Round(
			100 * float64(progress.Completed) / float64(progress.Total),
		))
	}

	return &progress, nil
}
