package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ahmednasr/repo-tools/internal/models"
)

type fakeCompleter struct {
	mu          sync.Mutex
	pingErr     error
	completeErr error
	answer      string
	pings       int
	prompts     []string
}

func (f *fakeCompleter) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return f.answer, nil
}

type fakeRunner struct {
	mu      sync.Mutex
	results []models.ToolResult
	err     error
	calls   int
	repos   []models.RepoRef
}

func (f *fakeRunner) Run(ctx context.Context, repo models.RepoRef, query string) ([]models.ToolResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.repos = append(f.repos, repo)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeHistoryRepo struct {
	touched []models.RepoRef
	recent  []models.RecentRepo
	limit   int
	err     error
}

func (f *fakeHistoryRepo) Touch(ctx context.Context, repo models.RepoRef, at time.Time) error {
	f.touched = append(f.touched, repo)
	return f.err
}

func (f *fakeHistoryRepo) Recent(ctx context.Context, limit int) ([]models.RecentRepo, error) {
	f.limit = limit
	return f.recent, f.err
}

// closableCompleter counts Close calls, like a backend holding a connection.
type closableCompleter struct {
	fakeCompleter
	closed int32
}

func (c *closableCompleter) Close() error {
	atomic.AddInt32(&c.closed, 1)
	return nil
}
