package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// With no overrides set it behaves like an in-memory store keyed by
// external ID.
type MockUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User

	// Function overrides
	CreateFn          func(ctx context.Context, user *domain.User) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByExternalIDFn func(ctx context.Context, externalID string) (*domain.User, error)

	// CreateCount tracks how many times Create was called
	CreateCount int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty in-memory user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

// Create implements store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCount++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.users[user.ExternalID]; exists {
		return store.ErrExternalIDExists
	}
	m.users[user.ExternalID] = user
	return nil
}

// GetByID implements store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByExternalID implements store.UserStore.GetByExternalID
func (m *MockUserStore) GetByExternalID(
	ctx context.Context,
	externalID string,
) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, externalID)
	}

	if u, ok := m.users[externalID]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

// Seed inserts a user directly, bypassing overrides and call tracking.
func (m *MockUserStore) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ExternalID] = user
}
