package jwtx

import "time"

// Signer is our interface for anything that can mint access tokens.
type Signer interface {
	Alg() string
	Issue(subject string, now time.Time, ttl time.Duration) (string, error)
}

// Issuer both mints and checks tokens with the same key material.
type Issuer interface {
	Signer
	Verifier
}
