package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/auth"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// UserEventPublisher is what the auth flow needs from the event producer.
type UserEventPublisher interface {
	PublishUserEvent(ctx context.Context, payload event.UserEventPayload) error
}

type RegisterUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	publisher UserEventPublisher
	logger    logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, publisher UserEventPublisher, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  repo,
		jwtSvc:    jwtSvc,
		publisher: publisher,
		logger:    log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	AccessToken string
	User        *user.User
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		uc.logger.Error("Failed to hash password", err)
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Avatar:       auth.GravatarURL(input.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewConflict("user", "email", input.Email)
		}
		uc.logger.Error("Failed to save user", err, zap.String("email", input.Email))
		return nil, apperror.NewInternal("failed to save user", err)
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	go func() {
		err := uc.publisher.PublishUserEvent(context.Background(), event.UserEventPayload{
			EventType: event.UserEventTypeRegistered,
			UserID:    u.ID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'registered' event", err, zap.String("user_id", u.ID.String()))
		}
	}()

	return &RegisterOutput{AccessToken: token, User: u}, nil
}
