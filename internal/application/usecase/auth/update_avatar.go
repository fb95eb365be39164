package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/internal/application/service"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// UpdateAvatarUseCase replaces the default gravatar with an uploaded image.
// Existing posts and comments keep the snapshot taken when they were
// created.
type UpdateAvatarUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
	logger   logger.Logger
}

func NewUpdateAvatarUseCase(repo user.Repository, uploader service.Uploader, log logger.Logger) *UpdateAvatarUseCase {
	return &UpdateAvatarUseCase{
		userRepo: repo,
		uploader: uploader,
		logger:   log,
	}
}

type UpdateAvatarInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UpdateAvatarOutput struct {
	AvatarURL string
}

func (uc *UpdateAvatarUseCase) Execute(ctx context.Context, input UpdateAvatarInput) (*UpdateAvatarOutput, error) {
	folder := fmt.Sprintf("users/%s/avatar", input.UserID.String())

	url, err := uc.uploader.Upload(ctx, input.File, folder, input.UserID.String())
	if err != nil {
		uc.logger.Error("Failed to upload avatar", err, zap.String("user_id", input.UserID.String()))
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	if err := uc.userRepo.UpdateAvatar(ctx, input.UserID, url); err != nil {
		go uc.uploader.Delete(context.Background(), folder+"/"+input.UserID.String())
		return nil, apperror.NewInternal("failed to persist avatar", err)
	}

	return &UpdateAvatarOutput{AvatarURL: url}, nil
}
