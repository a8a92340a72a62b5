//go:build e2e

package tasks_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestTaskLifecycle walks a member through creating, updating and deleting
// their own task against a running container.
func TestTaskLifecycle(t *testing.T) {
	baseURL := setupTasksContainer(t)
	client := tasksdk.NewClient(baseURL)
	admin := bootstrapService(t, client)

	member, session := createMember(t, client, admin, "alice")

	created, err := session.CreateTask(t.Context(), tasksdk.CreateTaskRequest{
		Title:       "Write report",
		Description: "Quarterly numbers",
		UserID:      member.ID,
	})
	require.NoError(t, err)
	require.Equal(t, tasksdk.TaskStatusPending, created.Status)
	require.Equal(t, member.ID, created.UserID)

	status := tasksdk.TaskStatusCompleted
	updated, err := session.UpdateTask(t.Context(), created.ID, tasksdk.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, tasksdk.TaskStatusCompleted, updated.Status)
	require.Equal(t, "Write report", updated.Title)

	owned, err := session.ListUserTasks(t.Context(), member.ID, tasksdk.TaskStatusCompleted)
	require.NoError(t, err)
	require.Len(t, owned, 1)

	pending, err := session.ListTasks(t.Context(), tasksdk.TaskStatusPending)
	require.NoError(t, err)
	require.Empty(t, pending)

	require.NoError(t, session.DeleteTask(t.Context(), created.ID))

	_, err = session.GetTask(t.Context(), created.ID)
	assertStatus(t, err, http.StatusNotFound, "deleted task")
}

func TestTaskForUnknownOwner(t *testing.T) {
	baseURL := setupTasksContainer(t)
	client := tasksdk.NewClient(baseURL)
	admin := bootstrapService(t, client)

	_, err := admin.CreateTask(t.Context(), tasksdk.CreateTaskRequest{
		Title:  "Orphan",
		UserID: 9999,
	})
	assertStatus(t, err, http.StatusNotFound, "task for unknown owner")
}
