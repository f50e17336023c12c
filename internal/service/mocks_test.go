package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/store"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

// fakeUserStore is an in-memory UserStore keyed by external ID.
type fakeUserStore struct {
	byExternalID map[string]*domain.User

	// createErr overrides Create's behavior when set.
	createErr error
	// getErr overrides GetByExternalID's behavior when set.
	getErr error
	// createHook runs before each Create, letting tests simulate races.
	createHook func()
	// createCalls counts Create invocations.
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byExternalID: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.createCalls++
	if f.createHook != nil {
		f.createHook()
	}
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byExternalID[user.ExternalID]; exists {
		return store.ErrExternalIDExists
	}
	f.byExternalID[user.ExternalID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.byExternalID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byExternalID[externalID]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

// fakeTaskStore is an in-memory TaskStore with owner-scoped predicates.
type fakeTaskStore struct {
	tasks []*domain.Task

	createErr error
	listErr   error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{}
}

func (f *fakeTaskStore) find(ownerID, taskID uuid.UUID) *domain.Task {
	for _, t := range f.tasks {
		if t.ID == taskID && t.UserID == ownerID {
			return t
		}
	}
	return nil
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeTaskStore) ListByUser(
	ctx context.Context,
	ownerID uuid.UUID,
	category string,
) ([]*domain.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := []*domain.Task{}
	for _, t := range f.tasks {
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

func (f *fakeTaskStore) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	t := f.find(ownerID, taskID)
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

func (f *fakeTaskStore) SetCompleted(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	completed bool,
) (*domain.Task, error) {
	t := f.find(ownerID, taskID)
	if t == nil {
		return nil, store.ErrTaskNotFound
	}
	t.Completed = completed
	return t, nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	for i, t := range f.tasks {
		if t.ID == taskID && t.UserID == ownerID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (f *fakeTaskStore) Progress(ctx context.Context, ownerID uuid.UUID) (*store.Progress, error) {
	p := &store.Progress{}
	for _, t := range f.tasks {
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

// fakeGenerator returns canned suggestions or a canned error.
type fakeGenerator struct {
	suggestions []string
	err         error
	calls       int
	lastTopic   string
}

func (f *fakeGenerator) GenerateTasks(ctx context.Context, topic string) ([]string, error) {
	f.calls++
	f.lastTopic = topic
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}
