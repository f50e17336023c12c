package api

import (
	"log/slog"
	"net/http"

	"github.com/dkovacs/tasknest/internal/api/shared"
	"github.com/dkovacs/tasknest/internal/platform/logger"
	"github.com/dkovacs/tasknest/internal/redact"
)

// GenerateTasksRequest represents the request body for task generation
type GenerateTasksRequest struct {
	Topic string `json:"topic"`
}

// GenerateTasks handles POST /tasks/generate requests.
// Suggestions are returned to the caller without being persisted.
func (h *TaskHandler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateTasksRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid topic")
		return
	}
	if req.Topic == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid topic")
		return
	}

	suggestions, err := h.taskService.GenerateSuggestions(r.Context(), req.Topic)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusBadRequest {
			safeMessage = "Missing or invalid topic"
		} else if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to generate tasks"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("task suggestions generated",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(suggestions)))
	shared.RespondWithJSON(w, r, http.StatusOK, SuggestionsResponse{Tasks: suggestions})
}
