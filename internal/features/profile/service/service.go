package service

import (
	"context"
	"errors"

	apperrors "miniapp-market-backend/internal/common/errors"
	"miniapp-market-backend/internal/features/profile/models"
	"miniapp-market-backend/internal/features/profile/repository"
)

// ProfileService resolves verified Telegram identities to internal profiles.
type ProfileService interface {
	Resolve(ctx context.Context, telegramID int64) (*models.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// Resolve looks up exactly one profile for the platform id. No
// auto-provisioning here: an unknown id is a 404, the bot creates profiles.
func (s *profileService) Resolve(ctx context.Context, telegramID int64) (*models.Profile, error) {
	profile, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperrors.NewProfileNotFoundError(telegramID)
		}
		return nil, apperrors.NewDatabaseError("get profile", err)
	}

	return profile, nil
}
