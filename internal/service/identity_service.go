package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/store"
)

// IdentityService maps provider-side identities to local user rows, creating
// the row on first contact. Users are never created any other way.
type IdentityService struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(userStore store.UserStore, logger *slog.Logger) *IdentityService {
	if userStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userStore cannot be nil for IdentityService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for IdentityService")
	}

	return &IdentityService{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "identity_service")),
	}
}

// Resolve returns the local user for a verified external identity, creating
// one on first sight. Concurrent first requests may race on the insert; the
// loser re-reads and returns the winner's row, so both callers resolve to
// the same user.
func (s *IdentityService) Resolve(ctx context.Context, externalID, emailHint string) (*domain.User, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: external ID cannot be empty", ErrValidation)
	}

	user, err := s.userStore.GetByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, &TaskServiceError{Operation: "resolve_identity", Err: err}
	}

	newUser, err := domain.NewUser(externalID, emailHint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	err = s.userStore.Create(ctx, newUser)
	if err == nil {
		s.logger.InfoContext(ctx, "created user on first authenticated request",
			slog.String("user_id", newUser.ID.String()))
		return newUser, nil
	}

	if store.IsDuplicateError(err) {
		// Another request created the row between our read and insert.
		existing, readErr := s.userStore.GetByExternalID(ctx, externalID)
		if readErr != nil {
			return nil, &TaskServiceError{Operation: "resolve_identity", Err: readErr}
		}
		return existing, nil
	}

	return nil, &TaskServiceError{Operation: "resolve_identity", Err: err}
}
