package tasksdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUserRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateUserRequest{Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "pw"}
	require.Nil(t, valid.Validate())

	tests := []struct {
		name  string
		edit  func(r *CreateUserRequest)
		field string
	}{
		{"short name", func(r *CreateUserRequest) { r.Name = "Al" }, "name"},
		{"blank name", func(r *CreateUserRequest) { r.Name = "   " }, "name"},
		{"missing username", func(r *CreateUserRequest) { r.Username = "" }, "username"},
		{"email without at", func(r *CreateUserRequest) { r.Email = "alice.example.com" }, "email"},
		{"email ending in at", func(r *CreateUserRequest) { r.Email = "alice@" }, "email"},
		{"email starting with at", func(r *CreateUserRequest) { r.Email = "@example.com" }, "email"},
		{"missing password", func(r *CreateUserRequest) { r.Password = "" }, "password"},
		{"long password", func(r *CreateUserRequest) { r.Password = strings.Repeat("x", 129) }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.edit(&r)
			errs := r.Validate()
			require.Contains(t, errs, tt.field)
			require.Len(t, errs, 1)
		})
	}
}

func TestUpdateUserRequestValidate(t *testing.T) {
	t.Parallel()

	require.Nil(t, UpdateUserRequest{}.Validate())
	require.Nil(t, UpdateUserRequest{Name: ptr("Alicia")}.Validate())

	errs := UpdateUserRequest{Name: ptr("Al"), Email: ptr("nope"), Password: ptr("")}.Validate()
	require.Len(t, errs, 3)
}

func TestRoleGrantRequestValidate(t *testing.T) {
	t.Parallel()

	require.Nil(t, RoleGrantRequest{Roles: []string{"editor"}}.Validate())
	// Unknown names are the server's business.
	require.Nil(t, RoleGrantRequest{Roles: []string{"no-such-role"}}.Validate())

	// An empty list is rejected by the server once it knows the user exists.
	require.Nil(t, RoleGrantRequest{}.Validate())
	require.Nil(t, RoleGrantRequest{Roles: []string{" ", ""}}.Validate())
}

func TestTaskRequestsValidate(t *testing.T) {
	t.Parallel()

	require.Nil(t, CreateTaskRequest{Title: "Write report", UserID: 1}.Validate())
	require.Nil(t, CreateTaskRequest{Title: "Write report", UserID: 1, Status: TaskStatusCompleted}.Validate())

	errs := CreateTaskRequest{Title: "ab", Status: "done"}.Validate()
	require.Contains(t, errs, "title")
	require.Contains(t, errs, "status")
	require.Contains(t, errs, "user_id")

	require.Nil(t, UpdateTaskRequest{}.Validate())
	require.Contains(t, UpdateTaskRequest{Status: ptr("later")}.Validate(), "status")
	require.Contains(t, UpdateTaskRequest{UserID: ptr(int64(0))}.Validate(), "user_id")
}

func TestBootstrapRequestValidate(t *testing.T) {
	t.Parallel()

	valid := BootstrapRequest{
		AdminName:     "Admin",
		AdminUsername: "admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret",
		Roles:         []string{"admin", "editor"},
	}
	require.Nil(t, valid.Validate())

	noAdmin := valid
	noAdmin.Roles = []string{"editor"}
	require.Equal(t, `must include "admin"`, noAdmin.Validate()["roles"])

	shortRole := valid
	shortRole.Roles = []string{"admin", "ed"}
	require.Contains(t, shortRole.Validate(), "roles")

	empty := BootstrapRequest{}.Validate()
	for _, f := range []string{"admin_name", "admin_username", "admin_email", "admin_password", "roles"} {
		require.Contains(t, empty, f)
	}
}
