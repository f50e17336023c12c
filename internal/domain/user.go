package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	ErrEmptyUserID     = errors.New("user ID cannot be empty")
	ErrEmptyExternalID = errors.New("external ID cannot be empty")
)

// User represents a local account backed by an identity from the external
// auth provider. Rows are created lazily the first time a verified identity
// is seen; the service itself never issues or checks credentials.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"-"` // Provider-issued subject, never exposed in responses
	Email      string    `json:"email"` // May be empty; the verified token does not always carry it
	CreatedAt  time.Time `json:"created_at"`
}

// NewUser creates a new User for the given external identity.
// It generates a new UUID for the user ID and sets the creation timestamp.
// The email hint may be empty. Returns an error if validation fails.
func NewUser(externalID, email string) (*User, error) {
	user := &User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Email:      email,
		CreatedAt:  time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.ExternalID == "" {
		return ErrEmptyExternalID
	}

	return nil
}
