package models

import "time"

// Subscription tiers.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Profile — внутренний аккаунт, привязанный к Telegram ID.
type Profile struct {
	ID               string    `json:"id"`
	TelegramID       int64     `json:"telegram_id"`
	FirstName        string    `json:"first_name"`
	Username         string    `json:"username"`
	SubscriptionTier string    `json:"subscription_tier"`
	ReferralCode     string    `json:"referral_code"`
	ReferralEarnings float64   `json:"referral_earnings"`
	ReferredBy       *string   `json:"referred_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPremium reports whether the profile may perform mutating product actions.
func (p *Profile) IsPremium() bool {
	return p.SubscriptionTier == TierPremium
}
