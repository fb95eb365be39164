package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/internal/domain/profile"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type EducationUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewEducationUseCase(repo profile.Repository, log logger.Logger) *EducationUseCase {
	return &EducationUseCase{
		profileRepo: repo,
		logger:      log,
	}
}

type AddEducationInput struct {
	OwnerID      uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type AddEducationOutput struct {
	Profile *profile.Profile
}

func (uc *EducationUseCase) ExecuteAdd(ctx context.Context, input AddEducationInput) (*AddEducationOutput, error) {
	p, err := uc.loadProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(profile.Education{
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		uc.logger.Error("Failed to persist education", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to persist education", err)
	}
	return &AddEducationOutput{Profile: p}, nil
}

type RemoveEducationInput struct {
	OwnerID     uuid.UUID
	EducationID uuid.UUID
}

type RemoveEducationOutput struct {
	Profile *profile.Profile
}

func (uc *EducationUseCase) ExecuteRemove(ctx context.Context, input RemoveEducationInput) (*RemoveEducationOutput, error) {
	p, err := uc.loadProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveEducation(input.EducationID); err != nil {
		return nil, apperror.NewNotFound("education", input.EducationID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		uc.logger.Error("Failed to persist education removal", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to persist education removal", err)
	}
	return &RemoveEducationOutput{Profile: p}, nil
}

func (uc *EducationUseCase) loadProfile(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		uc.logger.Error("Failed to load profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	return p, nil
}
