package api

import (
	"time"

	"github.com/dkovacs/tasknest/internal/domain"
	"github.com/dkovacs/tasknest/internal/store"
)

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskEnvelope wraps a single task, matching the {"task": ...} body shape.
type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

// TaskListEnvelope wraps a task list, matching the {"tasks": [...]} body shape.
type TaskListEnvelope struct {
	Tasks []TaskResponse `json:"tasks"`
}

// SuggestionsResponse carries generated task suggestions.
type SuggestionsResponse struct {
	Tasks []string `json:"tasks"`
}

// DeleteResponse acknowledges a successful delete.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ProgressResponse mirrors store.Progress for the HTTP boundary.
type ProgressResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID.String(),
		UserID:    task.UserID.String(),
		Content:   task.Content,
		Category:  task.Category,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}
}

// tasksToResponse converts a task slice, never returning a nil slice so the
// JSON body always carries an array.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

// progressToResponse converts a store.Progress to a ProgressResponse
func progressToResponse(p *store.Progress) ProgressResponse {
	return ProgressResponse{
		Total:     p.Total,
		Completed: p.Completed,
		Percent:   p.Percent,
	}
}
