package post

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// ProcessPostEventUseCase keeps the per-post like counter in Redis in sync
// with the event stream so feed views never have to count the likes array.
type ProcessPostEventUseCase struct {
	rdb *redis.Client
	log logger.Logger
}

func NewProcessPostEventUseCase(rdb *redis.Client, log logger.Logger) *ProcessPostEventUseCase {
	return &ProcessPostEventUseCase{rdb: rdb, log: log}
}

func likeCounterKey(postID string) string {
	return "post:likes:" + postID
}

func (uc *ProcessPostEventUseCase) Execute(ctx context.Context, payload event.PostEventPayload) error {
	key := likeCounterKey(payload.PostID.String())

	switch payload.EventType {
	case event.PostEventTypeLiked:
		if err := uc.rdb.Incr(ctx, key).Err(); err != nil {
			return fmt.Errorf("incr like counter: %w", err)
		}
	case event.PostEventTypeUnliked:
		if err := uc.rdb.Decr(ctx, key).Err(); err != nil {
			return fmt.Errorf("decr like counter: %w", err)
		}
	case event.PostEventTypeDeleted:
		if err := uc.rdb.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("del like counter: %w", err)
		}
	default:
		uc.log.Info("skipping post event", zap.String("event_type", string(payload.EventType)))
	}

	return nil
}
