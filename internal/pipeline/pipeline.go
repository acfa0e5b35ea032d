// Package pipeline assembles the question-answering stack from a Config so
// the HTTP server and the CLI run exactly the same components.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ahmednasr/repo-tools/internal/config"
	"github.com/ahmednasr/repo-tools/internal/github"
	"github.com/ahmednasr/repo-tools/internal/models"
	"github.com/ahmednasr/repo-tools/internal/service"
	"github.com/ahmednasr/repo-tools/internal/tools"
)

// Pipeline holds the assembled components shared by the server and the CLI.
type Pipeline struct {
	Catalog    tools.Catalog
	Ask        service.AskService
	Completion service.CompletionProbe
}

// New wires GitHub, the tool catalog, the cached agent and the fallback.
// history may be nil.
func New(cfg config.Config, history service.HistoryService) (*Pipeline, error) {
	gh, err := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubTimeout)
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}

	catalog := tools.DefaultCatalog(gh)
	orchestrator := tools.NewOrchestrator(catalog)
	log.Printf("[Pipeline] tools in order: %s", strings.Join(catalog.Names(), ", "))

	newCompleter := func(ctx context.Context) (service.Completer, error) {
		return service.NewCompleter(ctx, cfg)
	}
	agents := service.NewAgentProvider(service.NewCompletionAgentFactory(orchestrator, newCompleter))

	var defaultRepo models.RepoRef
	if cfg.HasDefaultRepo() {
		defaultRepo = models.RepoRef{Owner: cfg.DefaultRepoOwner, Name: cfg.DefaultRepoName}
	}

	ask := service.NewAskService(
		agents,
		orchestrator,
		service.NewFallbackResponder(cfg.FallbackDelay),
		history,
		defaultRepo,
		cfg.LLMTimeout,
	)

	return &Pipeline{
		Catalog:    catalog,
		Ask:        ask,
		Completion: service.NewCompletionProbe(newCompleter),
	}, nil
}
