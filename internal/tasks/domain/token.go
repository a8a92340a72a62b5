package domain

// TokenPair is what login hands back. There is no refresh flow, so
// RefreshToken is always nil and serialises as null.
type TokenPair struct {
	AccessToken  string
	RefreshToken *string
}
