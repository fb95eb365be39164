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

// ExperienceUseCase mutates the requester's own experience timeline. No
// separate ownership gate is needed: the profile lookup is scoped to the
// requester's identity.
type ExperienceUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewExperienceUseCase(repo profile.Repository, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{
		profileRepo: repo,
		logger:      log,
	}
}

type AddExperienceInput struct {
	OwnerID     uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type AddExperienceOutput struct {
	Profile *profile.Profile
}

func (uc *ExperienceUseCase) ExecuteAdd(ctx context.Context, input AddExperienceInput) (*AddExperienceOutput, error) {
	p, err := uc.loadProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(profile.Experience{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		uc.logger.Error("Failed to persist experience", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to persist experience", err)
	}
	return &AddExperienceOutput{Profile: p}, nil
}

type RemoveExperienceInput struct {
	OwnerID      uuid.UUID
	ExperienceID uuid.UUID
}

type RemoveExperienceOutput struct {
	Profile *profile.Profile
}

func (uc *ExperienceUseCase) ExecuteRemove(ctx context.Context, input RemoveExperienceInput) (*RemoveExperienceOutput, error) {
	p, err := uc.loadProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveExperience(input.ExperienceID); err != nil {
		return nil, apperror.NewNotFound("experience", input.ExperienceID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		uc.logger.Error("Failed to persist experience removal", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to persist experience removal", err)
	}
	return &RemoveExperienceOutput{Profile: p}, nil
}

func (uc *ExperienceUseCase) loadProfile(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
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
