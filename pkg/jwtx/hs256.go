package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies tokens with a shared HMAC secret. The secret is
// copied at construction and never re-read.
type HS256 struct {
	secret []byte
	parser *jwt.Parser
}

var _ Issuer = (*HS256)(nil)

// NewHS256 returns ErrMissingSecret when secret is empty.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256{
		secret: key,
		// Expiry is checked against the caller's clock in Verify.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Issue mints a token for subject expiring at now+ttl.
func (h *HS256) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	if len(h.secret) == 0 {
		return "", ErrMissingSecret
	}
	if subject == "" {
		return "", errors.New("jwtx: empty subject")
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, NewAccessClaims(subject, now, ttl))
	signed, err := t.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and that now is strictly before exp. Any
// failure other than expiry is reported as ErrInvalid.
func (h *HS256) Verify(tokenStr string, now time.Time) (Claims, error) {
	token, err := h.parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalid
	}

	if err := claims.ValidateExpiry(now); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
