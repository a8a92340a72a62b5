package service

import "time"

// PasswordHasher is the password verifier the services depend on.
// Verify reports a mismatch as (false, nil) and only errors on a malformed
// stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, candidate string) (bool, error)
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
