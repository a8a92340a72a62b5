package jwtx

import (
	"errors"
	"time"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string, now time.Time) (Claims, error)
}

var (
	// ErrMissingSecret is a startup condition: the issuer cannot be built
	// without a signing secret.
	ErrMissingSecret = errors.New("jwtx: missing signing secret")

	ErrExpired = errors.New("jwtx: token expired")
	ErrInvalid = errors.New("jwtx: invalid token")
)
