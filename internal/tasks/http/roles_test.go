package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

func TestGrantRolesHandler(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.adminToken(t)
	env.createRoles(t, "editor", "viewer")

	// Fill the table up to id 7.
	var lastID int64
	for i := 0; lastID < 7; i++ {
		lastID = env.createUser(t, fmt.Sprintf("user%d", i), "pw").ID
	}
	require.EqualValues(t, 7, lastID)

	heldCount := func() int {
		roles, err := env.store.UserRoles().ListRolesForUser(context.Background(), 7)
		require.NoError(t, err)
		return len(roles)
	}

	t.Run("first grant", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/7/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{"editor"}})
		requireStatus(t, rec, http.StatusOK)

		out := decodeData[tasksdk.RoleGrantResponse](t, rec)
		require.Equal(t, "Successfully added", out.Message)
		require.Len(t, out.Data.Granted, 1)
		require.Equal(t, "editor", out.Data.Granted[0].Name)
		require.Equal(t, 1, heldCount())
	})

	t.Run("already held editor is a no-op", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/7/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{"editor"}})
		requireStatus(t, rec, http.StatusOK)

		out := decodeData[tasksdk.RoleGrantResponse](t, rec)
		require.Equal(t, "All requested roles are already assigned", out.Message)
		require.Empty(t, out.Data.Granted)
		require.NotNil(t, out.Data.Granted)
		require.Equal(t, []string{"editor"}, out.Data.AlreadyHeld)
		require.Equal(t, 1, heldCount())
	})

	t.Run("unknown name is dropped", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/7/roles", adminTok,
			tasksdk.RoleGrantRequest{Roles: []string{"viewer", "nosuchrole"}})
		requireStatus(t, rec, http.StatusOK)
		require.NotContains(t, rec.Body.String(), "nosuchrole")

		out := decodeData[tasksdk.RoleGrantResponse](t, rec)
		require.Len(t, out.Data.Granted, 1)
		require.Equal(t, "viewer", out.Data.Granted[0].Name)
		require.Equal(t, 2, heldCount())
	})

	t.Run("only unknown names", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/7/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{"ghost"}})
		requireStatus(t, rec, http.StatusOK)
		require.NotContains(t, rec.Body.String(), "ghost")

		out := decodeData[tasksdk.RoleGrantResponse](t, rec)
		require.Equal(t, "None of the requested roles exist", out.Message)
		require.Empty(t, out.Data.Granted)
		require.Empty(t, out.Data.AlreadyHeld)
		require.Equal(t, 2, heldCount())
	})

	t.Run("empty role list", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/7/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{}})
		requireStatus(t, rec, http.StatusBadRequest)
		require.Contains(t, decodeError(t, rec).Details, "roles")
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/999/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{"editor"}})
		requireStatus(t, rec, http.StatusNotFound)
		require.Equal(t, tasksdk.ErrorCodeNotFound, decodeError(t, rec).Error)
	})

	t.Run("unknown user is checked before an empty list", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/999/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{}})
		requireStatus(t, rec, http.StatusNotFound)
		require.Equal(t, tasksdk.ErrorCodeNotFound, decodeError(t, rec).Error)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/abc/roles", adminTok, tasksdk.RoleGrantRequest{Roles: []string{"editor"}})
		requireStatus(t, rec, http.StatusNotFound)
	})

	t.Run("list held roles", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/users/7/roles", adminTok, nil)
		requireStatus(t, rec, http.StatusOK)
		require.Len(t, decodeData[[]tasksdk.RoleResponse](t, rec).Data, 2)

		requireStatus(t, env.do(t, http.MethodGet, "/users/999/roles", adminTok, nil), http.StatusNotFound)
	})
}

func TestRoleRoutesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.adminToken(t)
	env.createRoles(t, "editor")

	bob := env.createUser(t, "bob", "pw")
	env.grant(t, bob.ID, "editor")
	bobTok := env.token(t, bob)

	rec := env.do(t, http.MethodPost, "/users/1/roles", bobTok, tasksdk.RoleGrantRequest{Roles: []string{"admin"}})
	requireStatus(t, rec, http.StatusForbidden)
	require.Equal(t, tasksdk.ErrorCodeForbidden, decodeError(t, rec).Error)

	requireStatus(t, env.do(t, http.MethodPost, "/roles", bobTok, tasksdk.CreateRoleRequest{Name: "auditor"}), http.StatusForbidden)

	// Reads only need a valid token.
	requireStatus(t, env.do(t, http.MethodGet, "/roles", bobTok, nil), http.StatusOK)

	// Once bob is an admin the same request goes through.
	env.grant(t, bob.ID, "admin")
	requireStatus(t, env.do(t, http.MethodPost, "/roles", bobTok, tasksdk.CreateRoleRequest{Name: "auditor"}), http.StatusCreated)

	rec = env.do(t, http.MethodPost, "/roles", adminTok, tasksdk.CreateRoleRequest{Name: "auditor"})
	requireStatus(t, rec, http.StatusConflict)
	require.Equal(t, tasksdk.ErrorCodeAlreadyExists, decodeError(t, rec).Error)

	requireStatus(t, env.do(t, http.MethodPost, "/roles", adminTok, tasksdk.CreateRoleRequest{Name: "ab"}), http.StatusBadRequest)
}

func TestGetRole(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.adminToken(t)
	env.createRoles(t, "editor")

	bobTok := env.token(t, env.createUser(t, "bob", "pw"))

	rec := env.do(t, http.MethodGet, "/roles", bobTok, nil)
	requireStatus(t, rec, http.StatusOK)
	var editor tasksdk.RoleResponse
	for _, r := range decodeData[[]tasksdk.RoleResponse](t, rec).Data {
		if r.Name == "editor" {
			editor = r
		}
	}
	require.NotZero(t, editor.ID)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/roles/%d", editor.ID), bobTok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, editor, decodeData[tasksdk.RoleResponse](t, rec).Data)

	rec = env.do(t, http.MethodGet, "/roles/999", adminTok, nil)
	requireStatus(t, rec, http.StatusNotFound)
	require.Equal(t, tasksdk.ErrorCodeNotFound, decodeError(t, rec).Error)

	requireStatus(t, env.do(t, http.MethodGet, "/roles/abc", adminTok, nil), http.StatusNotFound)
	requireStatus(t, env.do(t, http.MethodGet, "/roles/1", "", nil), http.StatusUnauthorized)
}
