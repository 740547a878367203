package models

import (
	"strings"
	"time"
)

// Media types derived from media_url. Stored as NULL when there is no media.
const (
	MediaTypeImage   = "image"
	MediaTypeYouTube = "youtube"
)

const DefaultCurrency = "RUB"

// Product — товар пользователя (таблица user_products).
type Product struct {
	ID            string    `json:"id"`
	UserProfileID string    `json:"user_profile_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	MediaURL      *string   `json:"media_url"`
	MediaType     *string   `json:"media_type"`
	Link          *string   `json:"link"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductInput is the client-supplied payload for create and update.
// Note there is no media_type field: clients cannot set it. Field-level
// validation runs in the service, after the entitlement gate.
type ProductInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	MediaURL    string  `json:"media_url"`
	Link        string  `json:"link"`
}

// DeriveMediaType recomputes media_type from media_url. Applied identically
// on create and update; a client-supplied value is never trusted.
func DeriveMediaType(mediaURL string) *string {
	if mediaURL == "" {
		return nil
	}
	mt := MediaTypeImage
	if strings.Contains(mediaURL, "youtube.com") || strings.Contains(mediaURL, "youtu.be") {
		mt = MediaTypeYouTube
	}
	return &mt
}

// NormalizedCurrency returns the input currency or the RUB default.
func (in *ProductInput) NormalizedCurrency() string {
	if in.Currency == "" {
		return DefaultCurrency
	}
	return in.Currency
}
