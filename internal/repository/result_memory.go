package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

// memoryResult is the archive used when redis is disabled. It lives as long as the process.
type memoryResult struct {
	mu      sync.RWMutex
	limit   int
	results []*entity.MatchResult // newest first
}

func NewMemoryResultRepository(limit int) ResultRepository {
	return &memoryResult{limit: limit}
}

func (that *memoryResult) Save(_ context.Context, result *entity.MatchResult) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.results = append([]*entity.MatchResult{result}, that.results...)
	if that.limit > 0 && len(that.results) > that.limit {
		that.results = that.results[:that.limit]
	}

	return nil
}

func (that *memoryResult) GetByID(_ context.Context, id string) (*entity.MatchResult, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, result := range that.results {
		if result.MatchID == id {
			return result, nil
		}
	}

	return nil, apperror.ErrResultNotFound
}

func (that *memoryResult) ListRecent(_ context.Context, limit int) ([]*entity.MatchResult, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if limit <= 0 || limit > len(that.results) {
		limit = len(that.results)
	}

	return append([]*entity.MatchResult{}, that.results[:limit]...), nil
}
