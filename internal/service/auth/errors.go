package auth

import "errors"

// Common authentication error types
var (
	// ErrMissingToken indicates no bearer token was supplied with the request.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidToken indicates the token failed signature or claim validation.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token was valid but has expired.
	ErrExpiredToken = errors.New("token has expired")
)
