package mocks

import (
	"context"
	"sync"

	"github.com/dkovacs/tasknest/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateTasksFn allows test cases to mock the GenerateTasks behavior
	GenerateTasksFn func(ctx context.Context, topic string) ([]string, error)

	// Default response values
	Tasks []string
	Err   error

	// Call tracking for verification
	GenerateTasksCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateTasks was called
		Count int

		// Topics contains all topics passed to GenerateTasks calls
		Topics []string
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateTasks implements the generation.Generator interface
func (m *MockGenerator) GenerateTasks(ctx context.Context, topic string) ([]string, error) {
	m.GenerateTasksCalls.mu.Lock()
	m.GenerateTasksCalls.Count++
	m.GenerateTasksCalls.Topics = append(m.GenerateTasksCalls.Topics, topic)
	m.GenerateTasksCalls.mu.Unlock()

	if m.GenerateTasksFn != nil {
		return m.GenerateTasksFn(ctx, topic)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tasks, nil
}
