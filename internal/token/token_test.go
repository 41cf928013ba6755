package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestExpiryDecodesExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "sub": "42"})

	got, ok := Expiry(raw)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestExpiryMissingClaim(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "42"})

	_, ok := Expiry(raw)
	assert.False(t, ok)
}

func TestExpiryMalformedToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not a jwt", "definitely-not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"garbage payload", "aaaa.!!!!.cccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Expiry(tt.raw)
			assert.False(t, ok)
		})
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()

	pastToken := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})
	futureToken := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	noExpToken := signedToken(t, jwt.MapClaims{"sub": "42"})

	assert.True(t, Expired(pastToken, now))
	assert.False(t, Expired(futureToken, now))

	// No expiry known: the server's 401 is the authority, not us.
	assert.False(t, Expired(noExpToken, now))
	assert.False(t, Expired("garbage", now))
}

func TestExpiredLeewayAbsorbsClockSkew(t *testing.T) {
	now := time.Now()

	// Expired one second ago: within the skew leeway, still accepted.
	justExpired := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Second).Unix()})
	assert.False(t, Expired(justExpired, now))

	// Well past the leeway.
	longExpired := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
	assert.True(t, Expired(longExpired, now))
}
