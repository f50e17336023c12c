package generation

import "context"

// Generator defines the interface for suggesting tasks from a topic.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateTasks produces a short list of concise, actionable task
	// suggestions about the given topic.
	//
	// The topic must be non-empty; ErrEmptyTopic is returned before any
	// outbound call otherwise. The returned slice may legitimately be empty
	// when the model produced nothing usable. Implementations must bound the
	// outbound call by the context's deadline.
	GenerateTasks(ctx context.Context, topic string) ([]string, error)
}
