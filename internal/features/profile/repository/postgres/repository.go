package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"miniapp-market-backend/internal/features/profile/models"
	"miniapp-market-backend/internal/features/profile/repository"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) repository.ProfileRepository {
	return &postgresRepository{db: db}
}

// GetByTelegramID получает профиль по Telegram ID
func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Profile, error) {
	query := `
		SELECT id, telegram_id, COALESCE(first_name, ''), COALESCE(username, ''),
			subscription_tier, COALESCE(referral_code, ''), COALESCE(referral_earnings, 0),
			referred_by, created_at, updated_at
		FROM profiles
		WHERE telegram_id = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&profile.ID, &profile.TelegramID, &profile.FirstName, &profile.Username,
		&profile.SubscriptionTier, &profile.ReferralCode, &profile.ReferralEarnings,
		&profile.ReferredBy, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}
