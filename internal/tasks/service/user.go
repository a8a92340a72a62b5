package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

type UserService struct {
	Store  store.Store
	Hasher PasswordHasher
	Now    Clock
}

// CreateUser hashes the password and then writes the user and its profile
// in one transaction. Either both rows exist afterwards or neither does.
func (s *UserService) CreateUser(ctx context.Context, in domain.NewUser) (domain.UserDetail, error) {
	l := slogx.FromContext(ctx)

	if in.Password == "" {
		return domain.UserDetail{}, newValidationError("password", "required")
	}

	// 1. Hash before touching the store.
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.UserDetail{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.Now.now(),
	}
	profile := domain.UserProfile{Address: in.Address, Mobile: in.Mobile}

	// 2. User and profile together.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		profile.UserID = id
		return tx.Profiles().CreateProfile(ctx, profile)
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		l.Info("user already exists", slog.String("username", in.Username))
		return domain.UserDetail{}, ErrUserExists
	}
	if err != nil {
		return domain.UserDetail{}, err
	}

	l.Info("user created", slog.Int64("user_id", user.ID))
	return domain.UserDetail{User: user, Profile: profile}, nil
}

// GetUser fetches a user and its profile.
func (s *UserService) GetUser(ctx context.Context, id int64) (domain.UserDetail, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.UserDetail{}, ErrUserNotFound
	}
	if err != nil {
		return domain.UserDetail{}, err
	}

	profile, err := s.Store.Profiles().GetProfile(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		profile = domain.UserProfile{UserID: id}
	} else if err != nil {
		return domain.UserDetail{}, err
	}

	return domain.UserDetail{User: user, Profile: profile}, nil
}

func (s *UserService) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, f)
}

// UpdateUser applies the non-nil fields of upd. A new password is hashed
// before it is written.
func (s *UserService) UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (domain.UserDetail, error) {
	var newHash string
	if upd.Password != nil {
		if *upd.Password == "" {
			return domain.UserDetail{}, newValidationError("password", "must not be empty")
		}
		h, err := s.Hasher.Hash(*upd.Password)
		if err != nil {
			return domain.UserDetail{}, fmt.Errorf("hash password: %w", err)
		}
		newHash = h
	}

	var out domain.UserDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Username != nil {
			user.Username = *upd.Username
		}
		if upd.Email != nil {
			user.Email = *upd.Email
		}
		if newHash != "" {
			user.PasswordHash = newHash
		}
		now := s.Now.now()
		user.UpdatedAt = &now

		if err := tx.Users().UpdateUser(ctx, user); err != nil {
			return err
		}

		profile, err := tx.Profiles().GetProfile(ctx, id)
		if err != nil {
			return err
		}
		if upd.Address != nil || upd.Mobile != nil {
			if upd.Address != nil {
				profile.Address = upd.Address
			}
			if upd.Mobile != nil {
				profile.Mobile = upd.Mobile
			}
			if err := tx.Profiles().UpdateProfile(ctx, profile); err != nil {
				return err
			}
		}

		out = domain.UserDetail{User: user, Profile: profile}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.UserDetail{}, ErrUserNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.UserDetail{}, ErrUserExists
	case err != nil:
		return domain.UserDetail{}, err
	}

	slogx.FromContext(ctx).Info("user updated", slog.Int64("user_id", id))
	return out, nil
}

// DeleteUser removes the user together with its profile, role grants and
// tasks.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user deleted", slog.Int64("user_id", id))
	return nil
}
