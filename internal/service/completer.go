package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ahmednasr/repo-tools/internal/config"
)

// ErrCompletionUnavailable marks a completion service that failed its
// liveness probe or returned nothing usable.
var ErrCompletionUnavailable = errors.New("completion service unavailable")

// Completer is a chat‑completion backend.
type Completer interface {
	// Ping is a lightweight liveness probe; it must not generate text.
	Ping(ctx context.Context) error
	// Complete sends prompt as a single user message and returns the reply verbatim.
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter builds the backend selected by cfg.LLMProvider. Probes are
// capped by cfg.LLMPingTimeout.
func NewCompleter(ctx context.Context, cfg config.Config) (Completer, error) {
	var (
		c   Completer
		err error
	)
	switch cfg.LLMProvider {
	case config.ProviderOpenAI, "":
		c = NewOpenAICompleter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	case config.ProviderVertex:
		c, err = NewVertexCompleter(ctx, cfg.ProjectID, cfg.Location, cfg.LLMModel, cfg.CredentialsFile)
	default:
		err = fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}
	return WithPingTimeout(c, cfg.LLMPingTimeout), nil
}

// WithPingTimeout caps every Ping of c at d. A non‑positive d leaves c as is.
func WithPingTimeout(c Completer, d time.Duration) Completer {
	if d <= 0 {
		return c
	}
	return &timedPing{Completer: c, timeout: d}
}

type timedPing struct {
	Completer
	timeout time.Duration
}

func (t *timedPing) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Completer.Ping(ctx)
}

func (t *timedPing) Close() error {
	closeCompleter(t.Completer)
	return nil
}

// CompletionProbe checks the completion service without building an agent.
type CompletionProbe func(ctx context.Context) error

// Ping runs the probe.
func (p CompletionProbe) Ping(ctx context.Context) error {
	return p(ctx)
}

// NewCompletionProbe builds a throwaway completer per call and pings it.
func NewCompletionProbe(newCompleter func(ctx context.Context) (Completer, error)) CompletionProbe {
	return func(ctx context.Context) error {
		completer, err := newCompleter(ctx)
		if err != nil {
			return err
		}
		defer closeCompleter(completer)
		return completer.Ping(ctx)
	}
}

// closeCompleter releases backends that hold connections.
func closeCompleter(c Completer) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}
