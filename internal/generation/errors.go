package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrEmptyTopic is returned when the topic is empty; no outbound call is made.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrGenerationFailed is returned when task generation fails for any
	// external reason: non-success status, network failure, timeout, or a
	// malformed response body. Provider detail is logged, never surfaced.
	ErrGenerationFailed = errors.New("failed to generate tasks from topic")

	// ErrInvalidResponse is returned when the model response cannot be parsed
	// or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry.
	ErrTransientFailure = errors.New("transient error during task generation")

	// ErrNotConfigured is returned when the generative-language API key is
	// absent from configuration. A configuration gap, not an input error.
	ErrNotConfigured = errors.New("generation is not configured")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
