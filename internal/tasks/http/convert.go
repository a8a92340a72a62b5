package http

import (
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

func toUserResponse(u domain.User) tasksdk.UserResponse {
	return tasksdk.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserDetailResponse(d domain.UserDetail) tasksdk.UserDetailResponse {
	return tasksdk.UserDetailResponse{
		UserResponse: toUserResponse(d.User),
		Profile: tasksdk.ProfileResponse{
			Address: d.Profile.Address,
			Mobile:  d.Profile.Mobile,
		},
	}
}

func toRoleResponses(roles []domain.Role) []tasksdk.RoleResponse {
	out := make([]tasksdk.RoleResponse, len(roles))
	for i, r := range roles {
		out[i] = tasksdk.RoleResponse{ID: r.ID, Name: r.Name}
	}
	return out
}

func toTaskResponse(t domain.Task) tasksdk.TaskResponse {
	return tasksdk.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []domain.Task) []tasksdk.TaskResponse {
	out := make([]tasksdk.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
