// Package token inspects bearer credentials without verifying them.
//
// The portal backend is the authority on token validity; this package only
// decodes the expiry claim locally so the client can drop a session before
// wasting a round trip on a guaranteed 401. It must never be treated as a
// security boundary.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway absorbs small clock skew between client and server when
// comparing the exp claim against local time.
const expiryLeeway = 5 * time.Second

// Expiry returns the expiry time carried in the token's claims segment.
// The second return value is false when the token is malformed or carries
// no exp claim; callers must treat that as "no expiry known" and let the
// server's 401 response be the authority.
func Expiry(raw string) (time.Time, bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Expired reports whether the token carries a well-formed expiry claim
// that lies in the past relative to now, allowing a small leeway for
// clock skew. Malformed tokens are never reported as expired.
func Expired(raw string, now time.Time) bool {
	exp, ok := Expiry(raw)
	if !ok {
		return false
	}
	return now.After(exp.Add(expiryLeeway))
}
