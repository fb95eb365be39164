package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/internal/domain/profile"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type UserEventPublisher interface {
	PublishUserEvent(ctx context.Context, payload event.UserEventPayload) error
}

// DeleteAccountUseCase removes posts, then the profile, then the user
// record. Posts and profile go first so a mid-sequence failure can be
// retried without leaving orphans behind a deleted user. Missing profile
// or posts are not errors.
type DeleteAccountUseCase struct {
	postRepo    post.Repository
	profileRepo profile.Repository
	userRepo    user.Repository
	publisher   UserEventPublisher
	logger      logger.Logger
}

func NewDeleteAccountUseCase(pRepo post.Repository, profRepo profile.Repository, uRepo user.Repository, publisher UserEventPublisher, log logger.Logger) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		postRepo:    pRepo,
		profileRepo: profRepo,
		userRepo:    uRepo,
		publisher:   publisher,
		logger:      log,
	}
}

type DeleteAccountInput struct {
	UserID uuid.UUID
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if err := uc.postRepo.DeleteByOwner(ctx, input.UserID); err != nil {
		uc.logger.Error("Failed to delete user posts", err, zap.String("user_id", input.UserID.String()))
		return apperror.NewInternal("failed to delete posts", err)
	}

	if err := uc.profileRepo.DeleteByOwnerID(ctx, input.UserID); err != nil {
		uc.logger.Error("Failed to delete user profile", err, zap.String("user_id", input.UserID.String()))
		return apperror.NewInternal("failed to delete profile", err)
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		uc.logger.Error("Failed to delete user record", err, zap.String("user_id", input.UserID.String()))
		return apperror.NewInternal("failed to delete user", err)
	}

	go func() {
		err := uc.publisher.PublishUserEvent(context.Background(), event.UserEventPayload{
			EventType: event.UserEventTypeAccountDeleted,
			UserID:    input.UserID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'account_deleted' event", err, zap.String("user_id", input.UserID.String()))
		}
	}()

	return nil
}
