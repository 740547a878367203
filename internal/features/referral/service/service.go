package service

import (
	"context"
	"fmt"
	"time"

	apperrors "miniapp-market-backend/internal/common/errors"
	"miniapp-market-backend/internal/common/logger"
	profileModels "miniapp-market-backend/internal/features/profile/models"
	"miniapp-market-backend/internal/features/referral/models"
	"miniapp-market-backend/internal/features/referral/repository"
)

const (
	earningsHistoryLimit = 20
	statsCacheTTL        = 30 * time.Second
)

// StatsCache is satisfied by the common redis cache service.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReferralService aggregates the referral ledger for a resolved profile.
// Read-only; zero referrals is a valid empty result.
type ReferralService interface {
	Stats(ctx context.Context, profile *profileModels.Profile) (*models.Stats, error)
}

type referralService struct {
	repo  repository.ReferralRepository
	cache StatsCache
}

// NewReferralService builds the aggregator. cache may be nil to disable caching.
func NewReferralService(repo repository.ReferralRepository, cache StatsCache) ReferralService {
	return &referralService{repo: repo, cache: cache}
}

func (s *referralService) Stats(ctx context.Context, profile *profileModels.Profile) (*models.Stats, error) {
	cacheKey := fmt.Sprintf("referral_stats:%s", profile.ID)

	if s.cache != nil {
		var cached models.Stats
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	count, err := s.repo.CountReferrals(ctx, profile.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count referrals", err)
	}

	earnings, err := s.repo.LatestEarnings(ctx, profile.ID, earningsHistoryLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get earnings", err)
	}

	stats := &models.Stats{
		ReferralCode:  profile.ReferralCode,
		ReferralCount: count,
		// Накопитель на профиле остается источником истины; сумма по
		// леджеру с ним сходится только eventually.
		TotalEarnings: profile.ReferralEarnings,
		Earnings:      earnings,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, statsCacheTTL); err != nil {
			logger.Warn().Err(err).Str("profile_id", profile.ID).Msg("Failed to cache referral stats")
		}
	}

	return stats, nil
}
