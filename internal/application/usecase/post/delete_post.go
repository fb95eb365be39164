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

type DeletePostUseCase struct {
	postRepo  post.Repository
	publisher PostEventPublisher
	logger    logger.Logger
}

func NewDeletePostUseCase(pRepo post.Repository, publisher PostEventPublisher, log logger.Logger) *DeletePostUseCase {
	return &DeletePostUseCase{
		postRepo:  pRepo,
		publisher: publisher,
		logger:    log,
	}
}

type DeletePostInput struct {
	PostID      uuid.UUID
	RequesterID uuid.UUID
}

// Execute deletes the post only when the requester owns it.
func (uc *DeletePostUseCase) Execute(ctx context.Context, input DeletePostInput) error {
	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return apperror.NewNotFound("post", input.PostID.String())
		}
		uc.logger.Error("Failed to load post for delete", err, zap.String("post_id", input.PostID.String()))
		return apperror.NewInternal("failed to load post", err)
	}

	if err := p.AuthorizeOwner(input.RequesterID); err != nil {
		return apperror.NewPermissionDenied("requester does not own this post")
	}

	if err := uc.postRepo.Delete(ctx, input.PostID); err != nil {
		uc.logger.Error("Failed to delete post", err, zap.String("post_id", input.PostID.String()))
		return apperror.NewInternal("failed to delete post", err)
	}

	go func() {
		err := uc.publisher.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeDeleted,
			PostID:    input.PostID,
			ActorID:   input.RequesterID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'deleted' event", err, zap.String("post_id", input.PostID.String()))
		}
	}()

	return nil
}
