//go:build e2e

package tasks_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

func TestLoginAndGuard(t *testing.T) {
	baseURL := setupTasksContainer(t)
	client := tasksdk.NewClient(baseURL)
	admin := bootstrapService(t, client)
	require.NotEmpty(t, admin.AccessToken())

	_, err := client.Login(t.Context(), adminUsername, "wrong-password")
	assertUnauthorized(t, err, "wrong password")

	_, err = client.Login(t.Context(), "nobody", adminPassword)
	assertUnauthorized(t, err, "unknown user")

	_, err = client.NewSession("not-a-jwt").ListTasks(t.Context(), "")
	assertUnauthorized(t, err, "garbage token")

	tasks, err := admin.ListTasks(t.Context(), "")
	require.NoError(t, err)
	require.Empty(t, tasks)

	require.NoError(t, admin.Logout(t.Context()))
}

func TestBootstrapOnlyOnce(t *testing.T) {
	baseURL := setupTasksContainer(t)
	client := tasksdk.NewClient(baseURL)

	req := tasksdk.BootstrapRequest{
		AdminName:     adminName,
		AdminUsername: adminUsername,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		Roles:         defaultRoles,
	}

	_, err := client.Bootstrap(t.Context(), "wrong-token", req)
	assertUnauthorized(t, err, "wrong bootstrap token")

	resp, err := client.Bootstrap(t.Context(), bootstrapToken, req)
	require.NoError(t, err)
	require.Len(t, resp.Roles, len(defaultRoles))

	_, err = client.Bootstrap(t.Context(), bootstrapToken, req)
	assertUnauthorized(t, err, "second bootstrap")
}

func TestLoginRateLimit(t *testing.T) {
	baseURL := setupTasksContainerWithDefaultRateLimits(t)
	client := tasksdk.NewClient(baseURL)

	var limited bool
	for range 10 {
		_, err := client.Login(t.Context(), "nobody", "whatever")
		require.Error(t, err)
		if apiErr, ok := err.(*tasksdk.APIError); ok && apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	require.True(t, limited, "login should be throttled after repeated attempts")
}
