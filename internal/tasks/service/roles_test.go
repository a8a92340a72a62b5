package service

import (
	"context"
	"sync"
	"testing"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/stretchr/testify/require"
)

func newRolesFixture(t *testing.T) (*RolesService, domain.User) {
	t.Helper()
	st := newTestStore(t)
	users := &UserService{Store: st, Hasher: newTestHasher(), Now: fixedClock()}
	u := createUser(t, users, "alice", "pw")
	createRoles(t, st, "admin", "editor", "viewer")
	return &RolesService{Store: st}, u
}

func countGrants(t *testing.T, svc *RolesService, userID int64, role string) int {
	t.Helper()
	held, err := svc.Store.UserRoles().ListRolesForUser(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, r := range held {
		if r.Name == role {
			n++
		}
	}
	return n
}

func TestGrantRolesIdempotent(t *testing.T) {
	svc, alice := newRolesFixture(t)
	ctx := context.Background()

	first, err := svc.GrantRoles(ctx, alice.ID, []string{"admin"})
	require.NoError(t, err)
	require.Len(t, first.Granted, 1)
	require.Equal(t, "admin", first.Granted[0].Name)
	require.False(t, first.NoOp())

	second, err := svc.GrantRoles(ctx, alice.ID, []string{"admin"})
	require.NoError(t, err)
	require.Empty(t, second.Granted)
	require.True(t, second.NoOp())
	require.Equal(t, []string{"admin"}, second.AlreadyHeld)

	require.Equal(t, 1, countGrants(t, svc, alice.ID, "admin"))
}

func TestGrantRolesPartiallyHeld(t *testing.T) {
	svc, alice := newRolesFixture(t)
	ctx := context.Background()

	_, err := svc.GrantRoles(ctx, alice.ID, []string{"editor"})
	require.NoError(t, err)

	g, err := svc.GrantRoles(ctx, alice.ID, []string{"editor", "viewer", "viewer", " "})
	require.NoError(t, err)
	require.Equal(t, []string{"editor"}, g.AlreadyHeld)
	require.Len(t, g.Granted, 1)
	require.Equal(t, "viewer", g.Granted[0].Name)

	held, err := svc.RolesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, held, 2)
}

func TestGrantRolesDropsUnknownNames(t *testing.T) {
	svc, alice := newRolesFixture(t)
	ctx := context.Background()

	g, err := svc.GrantRoles(ctx, alice.ID, []string{"editor", "edtior"})
	require.NoError(t, err)
	require.Len(t, g.Granted, 1)
	require.Equal(t, "editor", g.Granted[0].Name)
	require.Equal(t, []string{"edtior"}, g.Dropped)

	names, err := svc.RoleNamesForSubject(ctx, alice.Email)
	require.NoError(t, err)
	require.Equal(t, []string{"editor"}, names)
}

func TestGrantRolesOnlyUnknownNames(t *testing.T) {
	svc, alice := newRolesFixture(t)
	ctx := context.Background()

	t.Run("nothing resolves", func(t *testing.T) {
		g, err := svc.GrantRoles(ctx, alice.ID, []string{"ghost"})
		require.NoError(t, err)
		require.True(t, g.NoOp())
		require.True(t, g.NothingMatched())
		require.Equal(t, []string{"ghost"}, g.Dropped)

		held, err := svc.RolesForUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, held)
	})

	t.Run("unknown alongside held is a no-op", func(t *testing.T) {
		_, err := svc.GrantRoles(ctx, alice.ID, []string{"viewer"})
		require.NoError(t, err)

		g, err := svc.GrantRoles(ctx, alice.ID, []string{"viewer", "ghost"})
		require.NoError(t, err)
		require.True(t, g.NoOp())
		require.False(t, g.NothingMatched())
		require.Equal(t, []string{"ghost"}, g.Dropped)
	})
}

func TestGrantRolesErrors(t *testing.T) {
	svc, alice := newRolesFixture(t)
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GrantRoles(ctx, 999, []string{"admin"})
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown user wins over empty set", func(t *testing.T) {
		_, err := svc.GrantRoles(ctx, 999, nil)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("empty set", func(t *testing.T) {
		_, err := svc.GrantRoles(ctx, alice.ID, []string{})
		require.ErrorIs(t, err, ErrValidation)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Details, "roles")
	})

	t.Run("blank names only", func(t *testing.T) {
		_, err := svc.GrantRoles(ctx, alice.ID, []string{"", "  "})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestGrantRolesConcurrent(t *testing.T) {
	svc, alice := newRolesFixture(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
		errs    []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := svc.GrantRoles(ctx, alice.ID, []string{"admin"})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			granted += len(g.Granted)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Equal(t, 1, granted)
	require.Equal(t, 1, countGrants(t, svc, alice.ID, "admin"))
}

func TestRoleNamesForUnknownSubject(t *testing.T) {
	svc, _ := newRolesFixture(t)
	names, err := svc.RoleNamesForSubject(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestCreateRole(t *testing.T) {
	svc, _ := newRolesFixture(t)
	ctx := context.Background()

	r, err := svc.CreateRole(ctx, "  auditor ")
	require.NoError(t, err)
	require.Equal(t, "auditor", r.Name)

	_, err = svc.CreateRole(ctx, "auditor")
	require.ErrorIs(t, err, ErrRoleExists)

	_, err = svc.CreateRole(ctx, "")
	require.ErrorIs(t, err, ErrValidation)

	got, err := svc.GetRoleByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, r, got)

	_, err = svc.GetRoleByID(ctx, 999)
	require.ErrorIs(t, err, ErrRoleNotFound)
}
