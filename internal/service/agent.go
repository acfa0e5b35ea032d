package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// ToolRunner collects the tool results for one repository and question.
// *tools.Orchestrator satisfies it.
type ToolRunner interface {
	Run(ctx context.Context, repo models.RepoRef, query string) ([]models.ToolResult, error)
}

// Agent is the model‑backed pipeline: run the tools, then ask the model.
type Agent struct {
	tools     ToolRunner
	responder Responder
}

// NewAgent wires a tool runner to a responder.
func NewAgent(tools ToolRunner, responder Responder) *Agent {
	return &Agent{tools: tools, responder: responder}
}

// Generate answers query about repo. The collected tool results are returned
// even when the responder fails, so a caller can reuse them.
func (a *Agent) Generate(ctx context.Context, repo models.RepoRef, query string) (string, []models.ToolResult, error) {
	results, err := a.tools.Run(ctx, repo, query)
	if err != nil {
		return "", nil, fmt.Errorf("collect tool results: %w", err)
	}
	answer, err := a.responder.Respond(ctx, query, results)
	if err != nil {
		return "", results, err
	}
	return answer, results, nil
}

// Close releases the responder's backend, if it holds one.
func (a *Agent) Close() {
	if closer, ok := a.responder.(io.Closer); ok {
		_ = closer.Close()
	}
}

// AgentFactory builds a ready Agent or reports why it cannot.
type AgentFactory func(ctx context.Context) (*Agent, error)

// AgentProvider owns the process‑wide Agent. The agent is built on first use
// and reused afterwards. Concurrent callers share one in‑flight build and its
// outcome. A failed build leaves nothing cached, so the next Get tries again.
type AgentProvider struct {
	factory AgentFactory
	builds  singleflight.Group

	mu    sync.Mutex
	agent *Agent
}

// NewAgentProvider returns a provider that builds agents with factory.
func NewAgentProvider(factory AgentFactory) *AgentProvider {
	return &AgentProvider{factory: factory}
}

// Get returns the cached agent, building it if needed. The build does not
// inherit ctx cancellation: it is shared by every caller waiting on it.
func (p *AgentProvider) Get(ctx context.Context) (*Agent, error) {
	if agent := p.cached(); agent != nil {
		return agent, nil
	}

	v, err, _ := p.builds.Do("agent", func() (interface{}, error) {
		if agent := p.cached(); agent != nil {
			return agent, nil
		}
		agent, err := p.factory(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("build agent: %w", err)
		}

		p.mu.Lock()
		p.agent = agent
		p.mu.Unlock()
		log.Printf("[Agent Provider] agent initialised")
		return agent, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Agent), nil
}

func (p *AgentProvider) cached() *Agent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.agent
}

// Release drops agent if it is still the cached one and closes it. Callers
// that saw the same agent fail release it at most once between them.
func (p *AgentProvider) Release(agent *Agent) {
	p.mu.Lock()
	if p.agent != agent || agent == nil {
		p.mu.Unlock()
		return
	}
	p.agent = nil
	p.mu.Unlock()

	agent.Close()
}

// Reset drops and closes the cached agent; the next Get builds a fresh one.
func (p *AgentProvider) Reset() {
	p.Release(p.cached())
}

// NewCompletionAgentFactory returns a factory that builds the completer,
// checks it is alive and pairs it with runner.
func NewCompletionAgentFactory(runner ToolRunner, newCompleter func(ctx context.Context) (Completer, error)) AgentFactory {
	return func(ctx context.Context) (*Agent, error) {
		completer, err := newCompleter(ctx)
		if err != nil {
			return nil, err
		}
		if err := completer.Ping(ctx); err != nil {
			closeCompleter(completer)
			return nil, err
		}
		return NewAgent(runner, NewCompletionResponder(completer)), nil
	}
}
