package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/dkovacs/tasknest/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrExternalIDExists if the external ID is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique local ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByExternalID retrieves a user by the identity provider's subject ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}
