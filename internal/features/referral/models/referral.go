package models

import "time"

// Подстановка имени, когда у приглашенного нет ни имени, ни username.
const FallbackReferredName = "Пользователь"

// Earning — одна строка из append-only леджера referral_earnings,
// обогащенная отображаемым именем приглашенного пользователя.
type Earning struct {
	ID             string    `json:"id"`
	PurchaseAmount float64   `json:"purchase_amount"`
	EarningAmount  float64   `json:"earning_amount"`
	PurchaseType   string    `json:"purchase_type"`
	CreatedAt      time.Time `json:"created_at"`
	ReferredName   string    `json:"referred_name"`
}

// Stats is the aggregate returned for the stats action.
type Stats struct {
	ReferralCode  string    `json:"referralCode"`
	ReferralCount int64     `json:"referralCount"`
	TotalEarnings float64   `json:"totalEarnings"`
	Earnings      []Earning `json:"earnings"`
}
