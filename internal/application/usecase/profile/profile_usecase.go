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

type ProfileUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		logger:      log,
	}
}

type UpsertProfileInput struct {
	OwnerID uuid.UUID
	Update  profile.Update
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
	Created bool
}

// ExecuteUpsert applies the sparse update to the owner's existing profile,
// or creates one from it when none exists. Fields absent from the update
// keep their stored values.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	created := false

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			uc.logger.Error("Failed to load profile for upsert", err, zap.String("owner_id", input.OwnerID.String()))
			return nil, apperror.NewInternal("failed to load profile", err)
		}
		p = &profile.Profile{
			OwnerID:   input.OwnerID,
			CreatedAt: time.Now().UTC(),
		}
		created = true
	}

	p.Apply(input.Update)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		uc.logger.Error("Failed to upsert profile", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}

	return &UpsertProfileOutput{Profile: p, Created: created}, nil
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGet(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.OwnerID.String())
		}
		uc.logger.Error("Failed to get profile", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to get profile", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteList(ctx context.Context) (*ListProfilesOutput, error) {
	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list profiles", err)
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}
