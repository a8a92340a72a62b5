package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

type RolesService struct {
	Store store.Store
}

// GetRoleByID fetches a role by its ID.
func (s *RolesService) GetRoleByID(ctx context.Context, roleID int64) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, roleID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	return role, err
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

func (s *RolesService) CreateRole(ctx context.Context, name string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, newValidationError("name", "required")
	}

	id, err := s.Store.Roles().CreateRole(ctx, name)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Role{}, ErrRoleExists
	}
	if err != nil {
		return domain.Role{}, err
	}

	slogx.FromContext(ctx).Info("role created", slog.Int64("role_id", id), slog.String("name", name))
	return domain.Role{ID: id, Name: name}, nil
}

// RolesForUser lists the roles userID holds.
func (s *RolesService) RolesForUser(ctx context.Context, userID int64) ([]domain.Role, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Store.UserRoles().ListRolesForUser(ctx, userID)
}

// RoleNamesForSubject resolves a token subject (an email) to the names of
// the roles it holds. An unknown subject holds nothing.
func (s *RolesService) RoleNamesForSubject(ctx context.Context, subject string) ([]string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, subject)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	roles, err := s.Store.UserRoles().ListRolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names, nil
}

// GrantRoles gives userID every role in names it does not already hold.
//
// Calling it again with the same names is a no-op: the result has no
// Granted roles and no error. Names that match no role are dropped and
// reported in Dropped, even when none of them exist. The whole grant runs
// in one transaction and the insert itself skips pairs a concurrent
// request already wrote.
func (s *RolesService) GrantRoles(ctx context.Context, userID int64, names []string) (domain.RoleGrant, error) {
	l := slogx.FromContext(ctx).With(slog.Int64("user_id", userID))
	requested := normaliseRoleNames(names)

	var grant domain.RoleGrant
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		grant = domain.RoleGrant{}

		// 1. The user must exist.
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				l.Info("grant for unknown user")
				return ErrUserNotFound
			}
			return err
		}

		// 2. Something must be asked for.
		if len(requested) == 0 {
			return newValidationError("roles", "at least one role is required")
		}

		// 3. What the user already holds out of the request.
		held, err := tx.UserRoles().ListRolesForUser(ctx, userID)
		if err != nil {
			return err
		}
		heldNames := make(map[string]struct{}, len(held))
		for _, r := range held {
			heldNames[r.Name] = struct{}{}
		}

		// 4. The remainder is what needs granting.
		var toGrant []string
		for _, name := range requested {
			if _, ok := heldNames[name]; ok {
				grant.AlreadyHeld = append(grant.AlreadyHeld, name)
				continue
			}
			toGrant = append(toGrant, name)
		}

		// 5. Nothing left to do.
		if len(toGrant) == 0 {
			return nil
		}

		// 6. Resolve names to roles, dropping the ones that do not exist.
		roles, err := tx.Roles().GetRolesByNames(ctx, toGrant)
		if err != nil {
			return err
		}
		grant.Dropped = missingNames(toGrant, roles)
		if len(grant.Dropped) > 0 {
			l.Warn("dropping unknown role names", slog.Any("roles", grant.Dropped))
		}
		if len(roles) == 0 {
			return nil
		}

		// 7. One batched insert for everything resolved.
		ids := make([]int64, len(roles))
		for i, r := range roles {
			ids[i] = r.ID
		}
		inserted, err := tx.UserRoles().AddUserRoles(ctx, userID, ids)
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with an identical grant: the end state is the same.
			l.Info("role grant raced with a concurrent grant")
			return nil
		}
		if err != nil {
			return err
		}

		// 8. Report only what this call wrote.
		grant.Granted = rolesWithIDs(roles, inserted)
		return nil
	})
	if err != nil {
		return domain.RoleGrant{}, err
	}

	if grant.NoOp() {
		l.Info("role grant was a no-op", slog.Any("already_held", grant.AlreadyHeld))
	} else {
		l.Info("roles granted", slog.Int("count", len(grant.Granted)))
	}
	return grant, nil
}

// normaliseRoleNames trims, drops blanks and de-duplicates while keeping
// the caller's order.
func normaliseRoleNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func missingNames(wanted []string, found []domain.Role) []string {
	have := make(map[string]struct{}, len(found))
	for _, r := range found {
		have[r.Name] = struct{}{}
	}
	var missing []string
	for _, n := range wanted {
		if _, ok := have[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

func rolesWithIDs(roles []domain.Role, ids []int64) []domain.Role {
	keep := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	out := make([]domain.Role, 0, len(ids))
	for _, r := range roles {
		if _, ok := keep[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}
