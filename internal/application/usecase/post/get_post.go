package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type GetPostUseCase struct {
	postRepo post.Repository
	logger   logger.Logger
}

func NewGetPostUseCase(pRepo post.Repository, log logger.Logger) *GetPostUseCase {
	return &GetPostUseCase{
		postRepo: pRepo,
		logger:   log,
	}
}

type GetPostInput struct {
	PostID uuid.UUID
}

type GetPostOutput struct {
	Post *post.Post
}

func (uc *GetPostUseCase) Execute(ctx context.Context, input GetPostInput) (*GetPostOutput, error) {
	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("post", input.PostID.String())
		}
		uc.logger.Error("Failed to get post", err, zap.String("post_id", input.PostID.String()))
		return nil, apperror.NewInternal("failed to get post", err)
	}
	return &GetPostOutput{Post: p}, nil
}
