package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type CommentUseCase struct {
	postRepo  post.Repository
	userRepo  user.Repository
	publisher PostEventPublisher
	logger    logger.Logger
}

func NewCommentUseCase(pRepo post.Repository, uRepo user.Repository, publisher PostEventPublisher, log logger.Logger) *CommentUseCase {
	return &CommentUseCase{
		postRepo:  pRepo,
		userRepo:  uRepo,
		publisher: publisher,
		logger:    log,
	}
}

type AddCommentInput struct {
	PostID      uuid.UUID
	RequesterID uuid.UUID
	Text        string
}

type AddCommentOutput struct {
	Comments []post.Comment
}

// ExecuteAdd appends a comment carrying a snapshot of the requester's
// current name and avatar.
func (uc *CommentUseCase) ExecuteAdd(ctx context.Context, input AddCommentInput) (*AddCommentOutput, error) {
	p, err := uc.loadPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	author, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.RequesterID.String())
		}
		uc.logger.Error("Failed to load comment author", err, zap.String("user_id", input.RequesterID.String()))
		return nil, apperror.NewInternal("failed to load author", err)
	}

	p.AddComment(post.Comment{
		UserID: author.ID,
		Text:   input.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	})

	if err := uc.postRepo.Update(ctx, p); err != nil {
		uc.logger.Error("Failed to persist comment", err, zap.String("post_id", input.PostID.String()))
		return nil, apperror.NewInternal("failed to persist comment", err)
	}

	go func() {
		err := uc.publisher.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeCommented,
			PostID:    input.PostID,
			ActorID:   input.RequesterID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'commented' event", err, zap.String("post_id", input.PostID.String()))
		}
	}()

	return &AddCommentOutput{Comments: p.Comments}, nil
}

type RemoveCommentInput struct {
	PostID      uuid.UUID
	CommentID   uuid.UUID
	RequesterID uuid.UUID
}

type RemoveCommentOutput struct {
	Comments []post.Comment
}

// ExecuteRemove deletes a comment by id; only its author may do so.
func (uc *CommentUseCase) ExecuteRemove(ctx context.Context, input RemoveCommentInput) (*RemoveCommentOutput, error) {
	p, err := uc.loadPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveComment(input.CommentID, input.RequesterID); err != nil {
		switch {
		case errors.Is(err, post.ErrCommentNotFound):
			return nil, apperror.NewNotFound("comment", input.CommentID.String())
		case errors.Is(err, post.ErrNotCommentAuthor):
			return nil, apperror.NewPermissionDenied("requester did not write this comment")
		default:
			return nil, apperror.NewInternal("failed to remove comment", err)
		}
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		uc.logger.Error("Failed to persist comment removal", err, zap.String("post_id", input.PostID.String()))
		return nil, apperror.NewInternal("failed to persist comment removal", err)
	}

	return &RemoveCommentOutput{Comments: p.Comments}, nil
}

func (uc *CommentUseCase) loadPost(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("post", postID.String())
		}
		uc.logger.Error("Failed to load post", err, zap.String("post_id", postID.String()))
		return nil, apperror.NewInternal("failed to load post", err)
	}
	return p, nil
}
