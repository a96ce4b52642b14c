package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

const (
	resultKeyPrefix = "result:"
	recentResultKey = "results"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
}

type dbResult struct {
	client *redis.Client
	limit  int
}

// NewResultRepository keeps at most limit results in the recent list.
func NewResultRepository(client *redis.Client, limit int) ResultRepository {
	return &dbResult{
		client: client,
		limit:  limit,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKeyPrefix+result.MatchID, resultJSON, 0)
		pipe.LPush(ctx, recentResultKey, result.MatchID)
		pipe.LTrim(ctx, recentResultKey, 0, int64(that.limit-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, resultKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// ListRecent returns results newest first. Ids whose record has gone missing are skipped.
func (that *dbResult) ListRecent(ctx context.Context, limit int) ([]*entity.MatchResult, error) {
	if limit <= 0 || limit > that.limit {
		limit = that.limit
	}

	ids, err := that.client.LRange(ctx, recentResultKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]*entity.MatchResult, 0, len(ids))
	for _, id := range ids {
		result, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrResultNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}
