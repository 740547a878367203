package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileModels "miniapp-market-backend/internal/features/profile/models"
	"miniapp-market-backend/internal/features/referral/models"
)

type fakeRepo struct {
	count    int64
	earnings []models.Earning
	calls    int
}

func (f *fakeRepo) CountReferrals(_ context.Context, _ string) (int64, error) {
	f.calls++
	return f.count, nil
}

func (f *fakeRepo) LatestEarnings(_ context.Context, _ string, limit int) ([]models.Earning, error) {
	if len(f.earnings) > limit {
		return f.earnings[:limit], nil
	}
	return f.earnings, nil
}

type fakeCache struct {
	decoded map[string]models.Stats
	sets    int
}

func newFakeCache() *fakeCache { return &fakeCache{decoded: map[string]models.Stats{}} }

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	cached, ok := f.decoded[key]
	if !ok {
		return errors.New("cache miss")
	}
	*dest.(*models.Stats) = cached
	return nil
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.sets++
	f.decoded[key] = *value.(*models.Stats)
	return nil
}

func testProfile() *profileModels.Profile {
	return &profileModels.Profile{
		ID:               "profile-1",
		ReferralCode:     "REF123",
		ReferralEarnings: 1500,
	}
}

func TestStats_ZeroReferrals(t *testing.T) {
	svc := NewReferralService(&fakeRepo{count: 0, earnings: []models.Earning{}}, nil)

	stats, err := svc.Stats(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, "REF123", stats.ReferralCode)
	assert.Equal(t, int64(0), stats.ReferralCount)
	assert.Equal(t, float64(1500), stats.TotalEarnings)
	assert.NotNil(t, stats.Earnings)
	assert.Empty(t, stats.Earnings)
}

func TestStats_WithHistory(t *testing.T) {
	earnings := []models.Earning{
		{ID: "e2", EarningAmount: 200, ReferredName: "Ivan", CreatedAt: time.Now()},
		{ID: "e1", EarningAmount: 100, ReferredName: models.FallbackReferredName, CreatedAt: time.Now().Add(-time.Hour)},
	}
	svc := NewReferralService(&fakeRepo{count: 2, earnings: earnings}, nil)

	stats, err := svc.Stats(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.ReferralCount)
	require.Len(t, stats.Earnings, 2)
	assert.Equal(t, "e2", stats.Earnings[0].ID, "newest first")
	assert.Equal(t, models.FallbackReferredName, stats.Earnings[1].ReferredName)
}

func TestStats_CachesResponse(t *testing.T) {
	repo := &fakeRepo{count: 1}
	cache := newFakeCache()
	svc := NewReferralService(repo, cache)

	profile := testProfile()

	_, err := svc.Stats(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.sets)

	stats, err := svc.Stats(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second call is served from cache")
	assert.Equal(t, int64(1), stats.ReferralCount)
}
