package repository

import (
	"context"

	"miniapp-market-backend/internal/features/referral/models"
)

// ReferralRepository reads the referral subsystem. The earnings ledger is
// append-only and written elsewhere; this service never mutates it.
type ReferralRepository interface {
	CountReferrals(ctx context.Context, profileID string) (int64, error)
	LatestEarnings(ctx context.Context, profileID string, limit int) ([]models.Earning, error)
}
