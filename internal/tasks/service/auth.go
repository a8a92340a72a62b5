package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

type AuthService struct {
	Store    store.Store
	Hasher   PasswordHasher
	Tokens   jwtx.Signer
	TokenTTL time.Duration // zero means jwtx.AccessTokenTTL
	Now      Clock

	dummyOnce sync.Once
	dummyHash string
}

// Authenticate checks username and password against the credential store.
// It returns ErrUserNotFound or ErrInvalidCredentials; callers facing the
// outside world should not tell the two apart.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		// Burn the same hashing cost as a real check so response timing
		// does not reveal which usernames exist.
		s.verifyDummy(password)
		l.Info("login for unknown username", slog.String("username", username))
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	ok, err := s.Hasher.Verify(user.PasswordHash, password)
	if err != nil {
		l.Error("stored password hash is unreadable", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		l.Info("login with wrong password", slog.Int64("user_id", user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues an access token whose subject is the
// user's email. No refresh token is issued.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return domain.TokenPair{}, err
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.AccessTokenTTL
	}

	token, err := s.Tokens.Issue(user.Email, s.Now.now(), ttl)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue token: %w", err)
	}

	slogx.FromContext(ctx).Info("user logged in", slog.Int64("user_id", user.ID))
	return domain.TokenPair{AccessToken: token}, nil
}

func (s *AuthService) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("not-a-real-password")
	})
	if s.dummyHash != "" {
		_, _ = s.Hasher.Verify(s.dummyHash, password)
	}
}
