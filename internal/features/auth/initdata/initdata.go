// Package initdata verifies Telegram Mini App init data.
//
// Every action surface goes through the single Verifier here; the HMAC chain
// is never re-implemented per endpoint. The algorithm follows the Telegram
// WebApp contract: the hash field is removed, the remaining pairs are sorted
// by key and joined into the data-check-string, the secret key is
// HMAC-SHA256(bot token) keyed with the literal "WebAppData", and the
// candidate signature is the lowercase hex HMAC-SHA256 of the
// data-check-string under that secret key.
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Typed verification failures. Callers must collapse all of these into one
// generic 401 response so the rejection reason cannot be probed.
var (
	ErrMalformed          = errors.New("init data: malformed query string")
	ErrMissingSignature   = errors.New("init data: hash field is missing")
	ErrInvalidSignature   = errors.New("init data: signature mismatch")
	ErrInvalidUserPayload = errors.New("init data: user field is missing or not valid JSON")
	ErrExpired            = errors.New("init data: auth_date is outside the accepted window")
)

// User is the identity embedded in the signed payload.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	IsPremium bool   `json:"is_premium,omitempty"`
}

type pair struct {
	key   string
	value string
}

// Verifier checks init data signatures against a single bot token.
// The token is injected once at construction and never logged.
type Verifier struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewVerifier derives the per-application secret key from the bot token.
// ttl == 0 disables the freshness check, matching observed behavior.
func NewVerifier(botToken string, ttl time.Duration) *Verifier {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))

	return &Verifier{
		secretKey: mac.Sum(nil),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Verify parses raw init data, checks its signature and returns the embedded
// user. It fails fast: no later stage runs after the first failure.
func (v *Verifier) Verify(raw string) (*User, error) {
	pairs, err := parse(raw)
	if err != nil {
		return nil, err
	}

	var hash string
	fields := pairs[:0]
	for _, p := range pairs {
		if p.key == "hash" {
			hash = p.value
			continue
		}
		fields = append(fields, p)
	}
	if hash == "" {
		return nil, ErrMissingSignature
	}

	if err := v.checkSignature(fields, hash); err != nil {
		return nil, err
	}

	if v.ttl > 0 {
		if err := v.checkFreshness(fields); err != nil {
			return nil, err
		}
	}

	return extractUser(fields)
}

// parse decodes the key=value&... form. Duplicate keys keep the last value,
// per URLSearchParams semantics.
func parse(raw string) ([]pair, error) {
	if raw == "" {
		return nil, ErrMalformed
	}

	seen := make(map[string]int)
	var pairs []pair
	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		k, val, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, ErrMalformed
		}
		value, err := url.QueryUnescape(val)
		if err != nil {
			return nil, ErrMalformed
		}
		if idx, ok := seen[key]; ok {
			pairs[idx].value = value
			continue
		}
		seen[key] = len(pairs)
		pairs = append(pairs, pair{key: key, value: value})
	}
	if len(pairs) == 0 {
		return nil, ErrMalformed
	}
	return pairs, nil
}

// checkSignature recomputes the HMAC over the canonical data-check-string and
// compares it to the presented hash in constant time.
func (v *Verifier) checkSignature(fields []pair, hash string) error {
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })

	var sb strings.Builder
	for i, p := range fields {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(p.value)
	}

	mac := hmac.New(sha256.New, v.secretKey)
	mac.Write([]byte(sb.String()))
	computed := mac.Sum(nil)

	presented, err := hex.DecodeString(hash)
	if err != nil || !hmac.Equal(computed, presented) {
		return ErrInvalidSignature
	}
	return nil
}

// checkFreshness rejects assertions older than the configured window. Runs
// only after the signature check, so auth_date is already authenticated.
func (v *Verifier) checkFreshness(fields []pair) error {
	for _, p := range fields {
		if p.key != "auth_date" {
			continue
		}
		authDate, err := strconv.ParseInt(p.value, 10, 64)
		if err != nil {
			return ErrExpired
		}
		if v.now().Sub(time.Unix(authDate, 0)) > v.ttl {
			return ErrExpired
		}
		return nil
	}
	return ErrExpired
}

func extractUser(fields []pair) (*User, error) {
	for _, p := range fields {
		if p.key != "user" {
			continue
		}
		var user User
		if err := json.Unmarshal([]byte(p.value), &user); err != nil || user.ID == 0 {
			return nil, ErrInvalidUserPayload
		}
		return &user, nil
	}
	return nil, ErrInvalidUserPayload
}
