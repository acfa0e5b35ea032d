package service

import (
	"context"
	"log"
	"time"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// DefaultRecentLimit is used when a caller asks for a non‑positive limit.
const DefaultRecentLimit = 10

// MaxRecentLimit caps how many recent repositories one listing returns.
const MaxRecentLimit = 50

// HistoryRepository persists which repositories were asked about.
type HistoryRepository interface {
	Touch(ctx context.Context, repo models.RepoRef, at time.Time) error
	Recent(ctx context.Context, limit int) ([]models.RecentRepo, error)
}

// HistoryService keeps the recent‑repository history. Without a store it
// records nothing and lists nothing.
type HistoryService interface {
	Record(ctx context.Context, repo models.RepoRef)
	Recent(ctx context.Context, limit int) ([]models.RecentRepo, error)
}

type historyService struct {
	repo HistoryRepository
	now  func() time.Time
}

// NewHistoryService wires the store; repo may be nil.
func NewHistoryService(repo HistoryRepository) HistoryService {
	return &historyService{repo: repo, now: time.Now}
}

// Record notes that repo was queried. Failures are logged, never returned:
// history must not break answering.
func (s *historyService) Record(ctx context.Context, repo models.RepoRef) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Touch(ctx, repo, s.now().UTC()); err != nil {
		log.Printf("[History Service] failed to record %s: %v", repo.FullName(), err)
	}
}

// Recent lists the most recently queried repositories, newest first.
func (s *historyService) Recent(ctx context.Context, limit int) ([]models.RecentRepo, error) {
	if s.repo == nil {
		return []models.RecentRepo{}, nil
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}
