package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tginitdata "github.com/telegram-mini-apps/init-data-golang"
)

const testToken = "7342037359:AAFak3test_token_not_a_real_one"

// sign builds a raw init data string with a valid hash over the given pairs.
func sign(pairs map[string]string, token string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+pairs[k])
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(token))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	values := url.Values{}
	for k, v := range pairs {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func validPairs(authDate time.Time) map[string]string {
	return map[string]string{
		"user":      `{"id":99281932,"first_name":"Andrew","last_name":"Rogue","username":"rogue","language_code":"en","is_premium":true}`,
		"auth_date": fmt.Sprintf("%d", authDate.Unix()),
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
	}
}

func TestVerify_Accept(t *testing.T) {
	raw := sign(validPairs(time.Now()), testToken)

	v := NewVerifier(testToken, 0)
	user, err := v.Verify(raw)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, int64(99281932), user.ID)
	assert.Equal(t, "Andrew", user.FirstName)
	assert.Equal(t, "rogue", user.Username)
	assert.True(t, user.IsPremium)

	// Cross-check against the reference library implementation.
	require.NoError(t, tginitdata.Validate(raw, testToken, 0))
	parsed, err := tginitdata.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed.User.ID)
}

func TestVerify_MinimalSpecExample(t *testing.T) {
	raw := sign(map[string]string{"user": `{"id":1}`, "auth_date": "100"}, testToken)

	v := NewVerifier(testToken, 0)
	user, err := v.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	// Bumping auth_date without recomputing the hash must invalidate it.
	tampered := strings.Replace(raw, "auth_date=100", "auth_date=101", 1)
	_, err = v.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_FieldOrderDoesNotMatter(t *testing.T) {
	pairs := validPairs(time.Now())
	raw := sign(pairs, testToken)

	// Rebuild the query string with segments in reverse order; the hash
	// stays valid because sorting happens before hashing.
	segments := strings.Split(raw, "&")
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	shuffled := strings.Join(segments, "&")

	v := NewVerifier(testToken, 0)
	user, err := v.Verify(shuffled)
	require.NoError(t, err)
	assert.Equal(t, int64(99281932), user.ID)
}

func TestVerify_TamperedHash(t *testing.T) {
	raw := sign(validPairs(time.Now()), testToken)

	idx := strings.Index(raw, "hash=")
	require.GreaterOrEqual(t, idx, 0)
	pos := idx + len("hash=")
	flipped := byte('0')
	if raw[pos] == '0' {
		flipped = '1'
	}
	tampered := raw[:pos] + string(flipped) + raw[pos+1:]

	v := NewVerifier(testToken, 0)
	_, err := v.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_WrongToken(t *testing.T) {
	raw := sign(validPairs(time.Now()), "1111111111:AAEother_bot_entirely")

	v := NewVerifier(testToken, 0)
	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_MissingHash(t *testing.T) {
	v := NewVerifier(testToken, 0)
	_, err := v.Verify("user=%7B%22id%22%3A1%7D&auth_date=100")
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerify_Malformed(t *testing.T) {
	v := NewVerifier(testToken, 0)

	for _, raw := range []string{"", "%zz=1&hash=abc", "user=%E0%A4%A&hash=abc"} {
		_, err := v.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "raw: %q", raw)
	}
}

func TestVerify_UserPayload(t *testing.T) {
	v := NewVerifier(testToken, 0)

	// No user field at all.
	raw := sign(map[string]string{"auth_date": "100"}, testToken)
	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidUserPayload)

	// Unparsable user JSON (still correctly signed).
	raw = sign(map[string]string{"auth_date": "100", "user": "{not-json"}, testToken)
	_, err = v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidUserPayload)

	// Zero id.
	raw = sign(map[string]string{"auth_date": "100", "user": `{"id":0,"first_name":"x"}`}, testToken)
	_, err = v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidUserPayload)
}

func TestVerify_DuplicateKeysLastWriteWins(t *testing.T) {
	// The signed content uses the last value of a repeated key, matching
	// URLSearchParams semantics on the issuing side.
	pairs := map[string]string{"user": `{"id":5}`, "auth_date": "200"}
	raw := sign(pairs, testToken)
	withDuplicate := "auth_date=1&" + raw

	v := NewVerifier(testToken, 0)
	user, err := v.Verify(withDuplicate)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
}

func TestVerify_Freshness(t *testing.T) {
	v := NewVerifier(testToken, time.Hour)

	fresh := sign(validPairs(time.Now().Add(-time.Minute)), testToken)
	_, err := v.Verify(fresh)
	require.NoError(t, err)

	stale := sign(validPairs(time.Now().Add(-2*time.Hour)), testToken)
	_, err = v.Verify(stale)
	assert.ErrorIs(t, err, ErrExpired)

	// TTL of zero disables the check entirely.
	v = NewVerifier(testToken, 0)
	_, err = v.Verify(stale)
	assert.NoError(t, err)
}
