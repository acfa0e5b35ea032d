package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// Orchestrator runs every tool of a catalog, one after another.
type Orchestrator struct {
	catalog Catalog
}

// NewOrchestrator wires the catalog.
func NewOrchestrator(catalog Catalog) *Orchestrator {
	return &Orchestrator{catalog: catalog}
}

// Run calls each tool sequentially and serializes its result. Tools never run
// concurrently. If any tool fails outright the whole run fails; there are no
// partial results.
func (o *Orchestrator) Run(ctx context.Context, repo models.RepoRef, query string) ([]models.ToolResult, error) {
	in := Input{Repo: repo, Query: query}
	results := make([]models.ToolResult, 0, len(o.catalog))

	for _, tool := range o.catalog {
		start := time.Now()
		value, err := tool.Run(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name, err)
		}

		content, err := Serialize(tool.Output, value)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name, err)
		}
		log.Printf("[Tool Orchestrator] %s on %s: %d chars in %s",
			tool.Name, repo.FullName(), len(content), time.Since(start).Round(time.Millisecond))

		results = append(results, models.ToolResult{Name: tool.Name, Content: content})
	}
	return results, nil
}

// Serialize turns a tool value into ToolResult content. Text outputs that are
// strings pass through; everything else becomes JSON indented by two spaces
// ("key": value) with HTML escaping disabled.
func Serialize(kind OutputKind, value interface{}) (string, error) {
	if s, ok := value.(string); ok && kind == OutputText {
		return s, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("serialize result: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
