// Package tools describes the repository tools the assistant can call and
// runs them, in catalog order, for one repository and question.
package tools

import (
	"context"
	"encoding/json"

	gh "github.com/google/go-github/v74/github"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// OutputKind tells the orchestrator how to serialize a tool's result.
type OutputKind string

const (
	OutputJSON OutputKind = "json"
	OutputText OutputKind = "text"
)

// Input is what every tool receives.
type Input struct {
	Repo  models.RepoRef
	Query string
}

// RunFunc executes a tool. It returns an error only when the call could not
// complete at all; upstream failures are part of the returned value.
type RunFunc func(ctx context.Context, in Input) (interface{}, error)

// Tool is one capability‑tagged stage of the pipeline.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Output      OutputKind
	ReadOnly    bool
	Run         RunFunc
}

// Definition is the listing form of a Tool (no behaviour attached).
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Output      OutputKind             `json:"output"`
	ReadOnly    bool                   `json:"readOnly"`
}

// Catalog is an ordered list of tools. Order is significant: results are
// reported, and embedded in prompts, in this order.
type Catalog []Tool

// Definitions returns the catalog without behaviour, for tools/list style listings.
func (c Catalog) Definitions() []Definition {
	defs := make([]Definition, 0, len(c))
	for _, t := range c {
		defs = append(defs, Definition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
			Output:      t.Output,
			ReadOnly:    t.ReadOnly,
		})
	}
	return defs
}

// Names returns the tool names in order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, t := range c {
		names = append(names, t.Name)
	}
	return names
}

// RepoFetcher is the GitHub surface the default tools need.
// *github.Client satisfies it.
type RepoFetcher interface {
	FetchMetadata(ctx context.Context, repo models.RepoRef) (json.RawMessage, error)
	FetchReadme(ctx context.Context, repo models.RepoRef) (string, error)
	SearchContents(ctx context.Context, repo models.RepoRef, query string) (json.RawMessage, error)
	FetchStructure(ctx context.Context, repo models.RepoRef) ([]*gh.RepositoryContent, error)
}

func repoSchema(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := map[string]interface{}{
		"owner": map[string]interface{}{
			"type":        "string",
			"description": "Repository owner, e.g. 'octocat'",
		},
		"repo": map[string]interface{}{
			"type":        "string",
			"description": "Repository name, e.g. 'hello-world'",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"required":   append([]string{"owner", "repo"}, required...),
		"properties": props,
	}
}

// DefaultCatalog returns the four GitHub tools: metadata, README, code
// search and root structure.
func DefaultCatalog(f RepoFetcher) Catalog {
	return Catalog{
		{
			Name:        models.ToolFetchMetadata,
			Description: "Fetch repository metadata: full name, description, stars, forks, language, topics and URLs.",
			InputSchema: repoSchema(nil),
			Output:      OutputJSON,
			ReadOnly:    true,
			Run: func(ctx context.Context, in Input) (interface{}, error) {
				return f.FetchMetadata(ctx, in.Repo)
			},
		},
		{
			Name:        models.ToolFetchReadme,
			Description: "Fetch the README of the default branch as plain text.",
			InputSchema: repoSchema(nil),
			Output:      OutputText,
			ReadOnly:    true,
			Run: func(ctx context.Context, in Input) (interface{}, error) {
				return f.FetchReadme(ctx, in.Repo)
			},
		},
		{
			Name: models.ToolSearchContents,
			Description: "Search the repository's code for keywords taken from the question. " +
				"Falls back to the root directory listing when code search is unavailable.",
			InputSchema: repoSchema(map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language question; words longer than three characters become search keywords",
				},
			}, "query"),
			Output:   OutputJSON,
			ReadOnly: true,
			Run: func(ctx context.Context, in Input) (interface{}, error) {
				return f.SearchContents(ctx, in.Repo, in.Query)
			},
		},
		{
			Name:        models.ToolFetchStructure,
			Description: "List the files and directories at the repository root.",
			InputSchema: repoSchema(nil),
			Output:      OutputJSON,
			ReadOnly:    true,
			Run: func(ctx context.Context, in Input) (interface{}, error) {
				return f.FetchStructure(ctx, in.Repo)
			},
		},
	}
}
