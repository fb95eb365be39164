package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// ToggleLikeUseCase flips the requester's like on a post. The
// read-modify-write against the store is not serialized; concurrent toggles
// on the same post race and the last write wins.
type ToggleLikeUseCase struct {
	postRepo  post.Repository
	publisher PostEventPublisher
	logger    logger.Logger
}

func NewToggleLikeUseCase(pRepo post.Repository, publisher PostEventPublisher, log logger.Logger) *ToggleLikeUseCase {
	return &ToggleLikeUseCase{
		postRepo:  pRepo,
		publisher: publisher,
		logger:    log,
	}
}

type ToggleLikeInput struct {
	PostID      uuid.UUID
	RequesterID uuid.UUID
}

type ToggleLikeOutput struct {
	Likes []post.Like
	Liked bool
}

func (uc *ToggleLikeUseCase) Execute(ctx context.Context, input ToggleLikeInput) (*ToggleLikeOutput, error) {
	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("post", input.PostID.String())
		}
		uc.logger.Error("Failed to load post for like toggle", err, zap.String("post_id", input.PostID.String()))
		return nil, apperror.NewInternal("failed to load post", err)
	}

	liked := p.ToggleLike(input.RequesterID)

	if err := uc.postRepo.Update(ctx, p); err != nil {
		uc.logger.Error("Failed to persist like toggle", err, zap.String("post_id", input.PostID.String()))
		return nil, apperror.NewInternal("failed to persist like toggle", err)
	}

	eventType := event.PostEventTypeUnliked
	if liked {
		eventType = event.PostEventTypeLiked
	}
	go func() {
		err := uc.publisher.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: eventType,
			PostID:    input.PostID,
			ActorID:   input.RequesterID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish like event", err, zap.String("post_id", input.PostID.String()))
		}
	}()

	return &ToggleLikeOutput{Likes: p.Likes, Liked: liked}, nil
}
