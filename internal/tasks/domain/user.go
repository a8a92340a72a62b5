package domain

import "time"

type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded, never serialised
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// UserProfile is created in the same transaction as its User and removed
// with it.
type UserProfile struct {
	UserID  int64
	Address *string
	Mobile  *string
}

// NewUser is the input to user creation. Password is plaintext here and is
// hashed before anything is written.
type NewUser struct {
	Name     string
	Username string
	Email    string
	Password string
	Address  *string
	Mobile   *string
}

// UserUpdate carries the fields a caller wants to change. Nil means keep.
type UserUpdate struct {
	Name     *string
	Username *string
	Email    *string
	Password *string
	Address  *string
	Mobile   *string
}

// UserFilter narrows ListUsers. An empty NameContains matches everyone.
type UserFilter struct {
	NameContains string
}

// UserDetail is a user together with its profile.
type UserDetail struct {
	User    User
	Profile UserProfile
}
