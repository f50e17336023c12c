package mocks

import (
	"context"

	"github.com/dkovacs/tasknest/internal/service/auth"
)

// MockVerifier implements auth.Verifier for testing
type MockVerifier struct {
	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(ctx context.Context, tokenString string) (*auth.Identity, error)

	// Default response values
	Identity *auth.Identity
	Err      error
}

var _ auth.Verifier = (*MockVerifier)(nil)

// Verify implements the auth.Verifier interface
func (m *MockVerifier) Verify(ctx context.Context, tokenString string) (*auth.Identity, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Identity != nil {
		return m.Identity, nil
	}
	return nil, auth.ErrInvalidToken
}
