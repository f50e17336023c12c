package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"github.com/dkovacs/tasknest/internal/config"
	"github.com/dkovacs/tasknest/internal/generation"
	"github.com/dkovacs/tasknest/internal/redact"
	"google.golang.org/genai"
)

// promptTemplate asks for plain newline-separated tasks so the response can
// be split without stripping numbering or markdown.
const promptTemplate = `Generate a list of 5 concise, actionable tasks to learn about {{.Topic}}. Return only the tasks, no numbering or formatting.`

// promptData represents the data passed to the prompt template
type promptData struct {
	Topic string
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to suggest tasks for a topic.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// prompt is the parsed template for creating prompts
	prompt *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Ensure GeminiGenerator implements generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGenerator creates the task suggestion generator backed by the Gemini API.
//
// A missing API key is not a construction error: the rest of the API stays
// usable and the returned generator reports generation.ErrNotConfigured on
// use, which the HTTP layer maps to a server-side configuration failure.
func NewGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (generation.Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		logger.WarnContext(ctx, "Gemini API key not configured, task generation disabled")
		return &disabledGenerator{logger: logger}, nil
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := template.New("tasks").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini generator initialized", "model", cfg.ModelName)

	return &GeminiGenerator{
		logger: logger,
		config: cfg,
		prompt: prompt,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateTasks implements generation.Generator.GenerateTasks.
//
// The outbound call is bounded by the configured timeout and retried with
// exponential backoff on transient failures. Whatever the provider returns
// is parsed tolerantly: a response without the expected candidate path
// yields an empty suggestion list rather than an error.
func (g *GeminiGenerator) GenerateTasks(ctx context.Context, topic string) ([]string, error) {
	if topic == "" {
		return nil, generation.ErrEmptyTopic
	}

	prompt, err := g.createPrompt(ctx, topic)
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to build generation prompt",
			"error", redact.Error(err))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	timeout := time.Duration(g.config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		// Provider detail stays in the logs; the caller only learns that
		// generation failed.
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"error", redact.Error(err),
			"topic_length", len(topic))
		return nil, generation.ErrGenerationFailed
	}

	text := extractText(resp)
	if text == "" {
		g.logger.WarnContext(ctx, "could not extract text from Gemini response")
	}

	tasks := splitTasks(text)
	g.logger.InfoContext(ctx, "task suggestions generated",
		"count", len(tasks))
	return tasks, nil
}

// createPrompt renders the prompt template with the provided topic.
func (g *GeminiGenerator) createPrompt(ctx context.Context, topic string) (string, error) {
	var buf bytes.Buffer
	if err := g.prompt.Execute(&buf, promptData{Topic: topic}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	g.logger.DebugContext(ctx, "generation prompt built",
		"prompt_length", buf.Len())
	return buf.String(), nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// All API errors are treated as transient and retried up to the configured
// number of attempts with jittered exponential delays; the surrounding
// context deadline caps the total time spent.
func (g *GeminiGenerator) callWithRetry(
	ctx context.Context,
	prompt string,
) (*genai.GenerateContentResponse, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		g.logger.WarnContext(ctx, "Gemini API call attempt failed",
			"attempt", attempt+1,
			"error", redact.Error(err))

		if attempt >= maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
		generation.ErrTransientFailure, maxRetries, lastErr)
}

// extractText pulls the first candidate's text out of a response.
// The provider's shape is untrusted: any missing link in the expected path
// degrades to an empty string instead of an error.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// splitTasks turns model output into a clean suggestion list: one task per
// line, whitespace trimmed, blank lines dropped. The result may be empty.
func splitTasks(text string) []string {
	tasks := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tasks = append(tasks, line)
		}
	}
	return tasks
}

// disabledGenerator is returned when no API key is configured. Every call
// reports the missing configuration; nothing leaves the process.
type disabledGenerator struct {
	logger *slog.Logger
}

var _ generation.Generator = (*disabledGenerator)(nil)

func (d *disabledGenerator) GenerateTasks(ctx context.Context, topic string) ([]string, error) {
	if topic == "" {
		return nil, generation.ErrEmptyTopic
	}

	d.logger.ErrorContext(ctx, "task generation requested but Gemini API key is not set")
	return nil, generation.ErrNotConfigured
}
