package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

var (
	ErrBootstrapDisabled     = errors.New("bootstrap disabled")
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

type BootstrapService struct {
	Store  store.Store
	Hasher PasswordHasher
	Token  string // Pre-configured bootstrap token; empty disables bootstrap
	Now    Clock
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap seeds an empty installation with roles and a first admin who
// holds the admin role. Everything is written in one transaction.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (domain.BootstrapResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Feature switch and caller check.
	if s.Token == "" {
		return domain.BootstrapResult{}, ErrBootstrapDisabled
	}
	if !cryptox.SecretsEqual(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.BootstrapResult{}, ErrBootstrapUnauthorized
	}

	// 2. Only ever once.
	if done, err := s.IsBootstrapped(ctx); err != nil {
		return domain.BootstrapResult{}, err
	} else if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.BootstrapResult{}, ErrBootstrapAlready
	}

	roleNames := normaliseRoleNames(req.Roles)
	hasAdmin := false
	for _, n := range roleNames {
		if n == domain.RoleAdmin {
			hasAdmin = true
		}
	}
	if !hasAdmin {
		return domain.BootstrapResult{}, newValidationError("roles", "must include "+domain.RoleAdmin)
	}
	if req.Admin.Password == "" {
		return domain.BootstrapResult{}, newValidationError("admin_password", "required")
	}

	// 3. Hash password
	hash, err := s.Hasher.Hash(req.Admin.Password)
	if err != nil {
		return domain.BootstrapResult{}, fmt.Errorf("hash password: %w", err)
	}

	// 4. Roles, admin, profile and grant together.
	var result domain.BootstrapResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		result = domain.BootstrapResult{}

		var adminRoleID int64
		for _, name := range roleNames {
			id, err := tx.Roles().CreateRole(ctx, name)
			if err != nil {
				l.Error("failed to create role", slog.String("role_name", name), slog.Any("error", err))
				return err
			}
			if name == domain.RoleAdmin {
				adminRoleID = id
			}
			result.Roles = append(result.Roles, domain.Role{ID: id, Name: name})
		}

		admin := domain.User{
			Name:         req.Admin.Name,
			Username:     req.Admin.Username,
			Email:        req.Admin.Email,
			PasswordHash: hash,
			CreatedAt:    s.Now.now(),
		}
		id, err := tx.Users().CreateUser(ctx, admin)
		if err != nil {
			l.Error("failed to create admin user", slog.Any("error", err))
			return err
		}
		admin.ID = id

		if err := tx.Profiles().CreateProfile(ctx, domain.UserProfile{
			UserID:  id,
			Address: req.Admin.Address,
			Mobile:  req.Admin.Mobile,
		}); err != nil {
			return err
		}

		if _, err := tx.UserRoles().AddUserRoles(ctx, id, []int64{adminRoleID}); err != nil {
			return err
		}

		result.Admin = admin
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.BootstrapResult{}, ErrBootstrapAlready
	}
	if err != nil {
		return domain.BootstrapResult{}, err
	}

	l.Info("successfully bootstrapped system",
		slog.Int64("admin_user_id", result.Admin.ID),
		slog.Int("roles", len(result.Roles)),
	)
	return result, nil
}
