package post

import (
	"context"

	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type ListPostsUseCase struct {
	postRepo post.Repository
	logger   logger.Logger
}

func NewListPostsUseCase(pRepo post.Repository, log logger.Logger) *ListPostsUseCase {
	return &ListPostsUseCase{
		postRepo: pRepo,
		logger:   log,
	}
}

type ListPostsOutput struct {
	Posts []*post.Post
}

// Execute returns every post, newest first.
func (uc *ListPostsUseCase) Execute(ctx context.Context) (*ListPostsOutput, error) {
	posts, err := uc.postRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list posts", err)
		return nil, apperror.NewInternal("failed to list posts", err)
	}
	return &ListPostsOutput{Posts: posts}, nil
}
