package service

import (
	"context"
	"fmt"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// Responder turns a question and the collected tool results into an answer.
// The model‑backed and the deterministic responders share this shape so the
// caller can swap one for the other.
type Responder interface {
	Respond(ctx context.Context, query string, results []models.ToolResult) (string, error)
}

// CompletionResponder answers through a completion service.
type CompletionResponder struct {
	completer Completer
}

// NewCompletionResponder wraps completer.
func NewCompletionResponder(completer Completer) *CompletionResponder {
	return &CompletionResponder{completer: completer}
}

// Respond probes the completion service first and only sends the prompt when
// the probe succeeds.
func (r *CompletionResponder) Respond(ctx context.Context, query string, results []models.ToolResult) (string, error) {
	if err := r.completer.Ping(ctx); err != nil {
		return "", err
	}
	answer, err := r.completer.Complete(ctx, BuildPrompt(query, results))
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return answer, nil
}

// Close releases the completer's connections, if it holds any.
func (r *CompletionResponder) Close() error {
	closeCompleter(r.completer)
	return nil
}
