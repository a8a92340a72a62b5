package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type UsersHandler struct {
	UserService *service.UserService
	TaskService *service.TaskService
}

// HandleList lists users, optionally filtered by name.
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Param			name	query		string											false	"Case-insensitive substring of the user's name"
//	@Success		200		{object}	tasksdk.DataResponse[[]tasksdk.UserResponse]	"Users"
//	@Failure		401		{object}	tasksdk.ErrorResponse							"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), domain.UserFilter{
		NameContains: strings.TrimSpace(r.URL.Query().Get("name")),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]tasksdk.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	httpx.WriteData(w, http.StatusOK, out, "")
}

// HandleGet returns one user with its profile.
//
//	@Summary		Get user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int												true	"User ID"
//	@Success		200	{object}	tasksdk.DataResponse[tasksdk.UserDetailResponse]	"User and profile"
//	@Failure		401	{object}	tasksdk.ErrorResponse								"Missing or invalid token"
//	@Failure		404	{object}	tasksdk.ErrorResponse								"User not found"
//	@Security		BearerAuth
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrUserNotFound)
	if !ok {
		return
	}

	detail, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toUserDetailResponse(detail), "")
}

// HandleCreate creates a user and its profile in one transaction.
//
//	@Summary		Create user
//	@Description	Creates the user and its profile atomically. Requires the admin role.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.CreateUserRequest							true	"New user"
//	@Success		201		{object}	tasksdk.DataResponse[tasksdk.UserDetailResponse]	"Created user"
//	@Failure		400		{object}	tasksdk.ErrorResponse								"Validation failed"
//	@Failure		401		{object}	tasksdk.ErrorResponse								"Missing or invalid token"
//	@Failure		403		{object}	tasksdk.ErrorResponse								"Admin role required"
//	@Failure		409		{object}	tasksdk.ErrorResponse								"Username or email taken"
//	@Security		BearerAuth
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req tasksdk.CreateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	detail, err := h.UserService.CreateUser(r.Context(), domain.NewUser{
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Address:  trimmed(req.Address),
		Mobile:   trimmed(req.Mobile),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, toUserDetailResponse(detail), "User created successfully")
}

// HandleUpdate changes the fields present in the body.
//
//	@Summary		Update user
//	@Description	Updates the supplied fields. A new password is re-hashed. Requires the admin role.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int													true	"User ID"
//	@Param			request	body		tasksdk.UpdateUserRequest							true	"Fields to change"
//	@Success		200		{object}	tasksdk.DataResponse[tasksdk.UserDetailResponse]	"Updated user"
//	@Failure		400		{object}	tasksdk.ErrorResponse								"Validation failed"
//	@Failure		403		{object}	tasksdk.ErrorResponse								"Admin role required"
//	@Failure		404		{object}	tasksdk.ErrorResponse								"User not found"
//	@Failure		409		{object}	tasksdk.ErrorResponse								"Username or email taken"
//	@Security		BearerAuth
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrUserNotFound)
	if !ok {
		return
	}

	var req tasksdk.UpdateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	detail, err := h.UserService.UpdateUser(r.Context(), id, domain.UserUpdate{
		Name:     trimmed(req.Name),
		Username: trimmed(req.Username),
		Email:    trimmed(req.Email),
		Password: req.Password,
		Address:  trimmed(req.Address),
		Mobile:   trimmed(req.Mobile),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toUserDetailResponse(detail), "User updated successfully")
}

// HandleDelete removes a user along with its profile, role grants and tasks.
//
//	@Summary		Delete user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int							true	"User ID"
//	@Success		200	{object}	tasksdk.DataResponse[any]	"Deleted"
//	@Failure		403	{object}	tasksdk.ErrorResponse		"Admin role required"
//	@Failure		404	{object}	tasksdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrUserNotFound)
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, nil, "User deleted successfully")
}

// HandleListTasks lists the tasks owned by a user.
//
//	@Summary		List a user's tasks
//	@Tags			Users
//	@Produce		json
//	@Param			id		path		int											true	"User ID"
//	@Param			status	query		string										false	"pending, in_progress or completed"
//	@Success		200		{object}	tasksdk.DataResponse[[]tasksdk.TaskResponse]	"Tasks"
//	@Failure		400		{object}	tasksdk.ErrorResponse						"Unknown status"
//	@Failure		404		{object}	tasksdk.ErrorResponse						"User not found"
//	@Security		BearerAuth
//	@Router			/users/{id}/tasks [get].
func (h *UsersHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrUserNotFound)
	if !ok {
		return
	}

	status := domain.TaskStatus(r.URL.Query().Get("status"))
	tasks, err := h.TaskService.ListTasksForUser(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toTaskResponses(tasks), "")
}
