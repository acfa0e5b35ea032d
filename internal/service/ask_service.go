package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ahmednasr/repo-tools/internal/models"
)

var (
	// ErrInvalidQuery rejects an empty or blank question.
	ErrInvalidQuery = errors.New("query must be a non-empty string")
	// ErrNoRepository means neither the request nor the configuration names a repository.
	ErrNoRepository = errors.New("no repository specified and no default repository configured")
	// ErrProcessing means even the deterministic fallback failed.
	ErrProcessing = errors.New("failed to process request")
)

// AskService answers natural‑language questions about a GitHub repository.
type AskService interface {
	// Ask returns the answer for req, or ErrInvalidQuery, ErrNoRepository or
	// ErrProcessing.
	Ask(ctx context.Context, req models.ToolRequest) (string, error)
}

// askService tries the model‑backed agent first and falls back to the
// deterministic responder on any failure along the way.
type askService struct {
	agents      *AgentProvider
	tools       ToolRunner
	fallback    Responder
	history     HistoryService
	defaultRepo models.RepoRef
	timeout     time.Duration
}

// NewAskService wires dependencies. agents may be nil to always answer with
// the fallback; defaultRepo may be zero; timeout caps the agent attempt.
func NewAskService(
	agents *AgentProvider,
	tools ToolRunner,
	fallback Responder,
	history HistoryService,
	defaultRepo models.RepoRef,
	timeout time.Duration,
) AskService {
	if history == nil {
		history = NewHistoryService(nil)
	}
	return &askService{
		agents:      agents,
		tools:       tools,
		fallback:    fallback,
		history:     history,
		defaultRepo: defaultRepo,
		timeout:     timeout,
	}
}

// Ask validates the request, resolves the repository and produces an answer.
func (s *askService) Ask(ctx context.Context, req models.ToolRequest) (string, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return "", ErrInvalidQuery
	}

	repo, err := s.resolveRepo(req)
	if err != nil {
		return "", err
	}

	answer, results, err := s.askAgent(ctx, repo, query)
	if err != nil {
		log.Printf("[Ask Service] agent attempt for %s failed: %v; using fallback", repo.FullName(), err)

		answer, err = s.askFallback(ctx, repo, query, results)
		if err != nil {
			log.Printf("[Ask Service] fallback for %s failed: %v", repo.FullName(), err)
			return "", fmt.Errorf("%w: %v", ErrProcessing, err)
		}
	}

	s.history.Record(ctx, repo)
	return answer, nil
}

// resolveRepo prefers the repository named in the request over the default.
func (s *askService) resolveRepo(req models.ToolRequest) (models.RepoRef, error) {
	repo := models.RepoRef{
		Owner: strings.TrimSpace(req.Owner),
		Name:  strings.TrimSpace(req.Repo),
	}
	if !repo.IsZero() {
		return repo, nil
	}
	if !s.defaultRepo.IsZero() {
		return s.defaultRepo, nil
	}
	return models.RepoRef{}, ErrNoRepository
}

// askAgent runs the model‑backed pipeline under the agent timeout. Tool
// results collected before a failure are returned for reuse.
func (s *askService) askAgent(ctx context.Context, repo models.RepoRef, query string) (string, []models.ToolResult, error) {
	if s.agents == nil {
		return "", nil, ErrCompletionUnavailable
	}

	agent, err := s.agents.Get(ctx)
	if err != nil {
		return "", nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	answer, results, err := agent.Generate(ctx, repo, query)
	if err != nil {
		if results != nil {
			// The model went away after the agent was built; probe again next time.
			s.agents.Release(agent)
		}
		return "", results, err
	}
	return answer, results, nil
}

// askFallback answers without a model, collecting tool results first when
// the agent attempt did not get that far.
func (s *askService) askFallback(ctx context.Context, repo models.RepoRef, query string, results []models.ToolResult) (string, error) {
	if results == nil {
		var err error
		results, err = s.tools.Run(ctx, repo, query)
		if err != nil {
			return "", err
		}
	}
	return s.fallback.Respond(ctx, query, results)
}
