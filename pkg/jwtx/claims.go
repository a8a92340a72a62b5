package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime of an access token.
const AccessTokenTTL = 60 * time.Minute

// Claims carry only what the service checks: who the token is for and
// when it stops being valid. No jti, issuer or audience, so issuing the
// same subject at the same instant always yields the same token.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds claims for subject valid from now until now+ttl.
func NewAccessClaims(subject string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateExpiry reports ErrExpired once now has reached exp. A token
// without exp is treated as invalid rather than eternal.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalid
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
