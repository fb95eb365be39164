package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/internal/application/service"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

const repoLimit = 5

// ListReposUseCase is a read-only passthrough to the code-hosting API.
// Responses are cached in redis so repeated dashboard loads don't burn
// through the upstream rate limit.
type ListReposUseCase struct {
	lister   service.RepoLister
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewListReposUseCase(lister service.RepoLister, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *ListReposUseCase {
	return &ListReposUseCase{
		lister:   lister,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

type ListReposInput struct {
	Username string
}

type ListReposOutput struct {
	Repos []service.Repo
}

func (uc *ListReposUseCase) Execute(ctx context.Context, input ListReposInput) (*ListReposOutput, error) {
	cacheKey := fmt.Sprintf("github:repos:%s", input.Username)

	if uc.redis != nil {
		cached, err := uc.redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var repos []service.Repo
			if err := json.Unmarshal(cached, &repos); err == nil {
				return &ListReposOutput{Repos: repos}, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("Redis lookup failed, falling through to upstream", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	repos, err := uc.lister.ListByUser(ctx, input.Username, repoLimit)
	if err != nil {
		if errors.Is(err, service.ErrGithubUserNotFound) {
			return nil, apperror.NewNotFound("github profile", input.Username)
		}
		uc.logger.Error("Upstream repo listing failed", err, zap.String("username", input.Username))
		return nil, apperror.NewInternal("failed to list repositories", err)
	}

	if uc.redis != nil {
		if payload, err := json.Marshal(repos); err == nil {
			if err := uc.redis.Set(ctx, cacheKey, payload, uc.cacheTTL).Err(); err != nil {
				uc.logger.Warn("Failed to cache repo listing", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return &ListReposOutput{Repos: repos}, nil
}
