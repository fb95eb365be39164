package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// PostEventPublisher is what the post flows need from the event producer.
type PostEventPublisher interface {
	PublishPostEvent(ctx context.Context, payload event.PostEventPayload) error
}

type CreatePostUseCase struct {
	postRepo  post.Repository
	userRepo  user.Repository
	publisher PostEventPublisher
	logger    logger.Logger
}

func NewCreatePostUseCase(pRepo post.Repository, uRepo user.Repository, publisher PostEventPublisher, log logger.Logger) *CreatePostUseCase {
	return &CreatePostUseCase{
		postRepo:  pRepo,
		userRepo:  uRepo,
		publisher: publisher,
		logger:    log,
	}
}

type CreatePostInput struct {
	OwnerID uuid.UUID
	Text    string
}

type CreatePostOutput struct {
	Post *post.Post
}

// Execute snapshots the author's current name and avatar onto the post;
// the snapshot stays frozen even when the author later changes either.
func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*CreatePostOutput, error) {
	author, err := uc.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.OwnerID.String())
		}
		uc.logger.Error("Failed to load post author", err, zap.String("user_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to load author", err)
	}

	newPost := &post.Post{
		ID:        uuid.New(),
		OwnerID:   author.ID,
		Text:      input.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []post.Like{},
		Comments:  []post.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.postRepo.Save(ctx, newPost); err != nil {
		uc.logger.Error("Failed to save post", err, zap.String("post_id", newPost.ID.String()))
		return nil, apperror.NewInternal("failed to save post", err)
	}

	go func() {
		err := uc.publisher.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeCreated,
			PostID:    newPost.ID,
			ActorID:   newPost.OwnerID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'created' event", err, zap.String("post_id", newPost.ID.String()))
		}
	}()

	return &CreatePostOutput{Post: newPost}, nil
}
