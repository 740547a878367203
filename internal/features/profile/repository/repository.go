package repository

import (
	"context"
	"errors"

	"miniapp-market-backend/internal/features/profile/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository reads profiles. Provisioning new profiles is handled by
// the bot's first-contact flow, not by this service.
type ProfileRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Profile, error)
}
