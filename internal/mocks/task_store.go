package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// With no overrides set it behaves like an in-memory store with the same
// owner-scoped semantics as the real implementation.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks []*domain.Task

	// Function overrides
	CreateFn       func(ctx context.Context, task *domain.Task) error
	ListByUserFn   func(ctx context.Context, ownerID uuid.UUID, category string) ([]*domain.Task, error)
	UpdateFn       func(ctx context.Context, ownerID, taskID uuid.UUID, update store.TaskUpdate) (*domain.Task, error)
	SetCompletedFn func(ctx context.Context, ownerID, taskID uuid.UUID, completed bool) (*domain.Task, error)
	DeleteFn       func(ctx context.Context, ownerID, taskID uuid.UUID) error
	ProgressFn     func(ctx context.Context, ownerID uuid.UUID) (*store.Progress, error)
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

func (m *MockTaskStore) find(ownerID, taskID uuid.UUID) *domain.Task {
	for _, t := range m.tasks {
		if t.ID == taskID && t.UserID == ownerID {
			return t
		}
	}
	return nil
}

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.tasks = append(m.tasks, task)
	return nil
}

// ListByUser implements store.TaskStore.ListByUser
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	ownerID uuid.UUID,
	category string,
) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, ownerID, category)
	}

	result := []*domain.Task{}
	for _, t := range m.tasks {
		if t.UserID != ownerID {
			continue
		}
		if category != "" && (t.Category == nil || *t.Category != category) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, taskID, update)
	}

	t := m.find(ownerID, taskID)
	if t == nil {
		return nil, store.ErrTaskNotFound
	}
	if update.Content != nil {
		t.Content = *update.Content
	}
	if update.Category != nil {
		t.Category = update.Category
	}
	return t, nil
}

// SetCompleted implements store.TaskStore.SetCompleted
func (m *MockTaskStore) SetCompleted(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	completed bool,
) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetCompletedFn != nil {
		return m.SetCompletedFn(ctx, ownerID, taskID, completed)
	}

	t := m.find(ownerID, taskID)
	if t == nil {
		return nil, store.ErrTaskNotFound
	}
	t.Completed = completed
	return t, nil
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, taskID)
	}

	for i, t := range m.tasks {
		if t.ID == taskID && t.UserID == ownerID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// Progress implements store.TaskStore.Progress
func (m *MockTaskStore) Progress(ctx context.Context, ownerID uuid.UUID) (*store.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ProgressFn != nil {
		return m.ProgressFn(ctx, ownerID)
	}

	p := &store.Progress{}
	for _, t := range m.tasks {
		if t.UserID != ownerID {
			continue
		}
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(float64(p.Completed)/float64(p.Total)*100 + 0.5)
	}
	return p, nil
}

// Seed inserts a task directly, bypassing overrides.
func (m *MockTaskStore) Seed(task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
}
