package tasksdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Session is an authenticated view of the API. Tokens are not refreshed;
// once the server answers ErrorCodeUnauthorized, log in again.
type Session struct {
	client      *Client
	accessToken string
}

func (s *Session) AccessToken() string { return s.accessToken }

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, s.accessToken, body, nil)
}

// Logout tells the server the session is over. Tokens are stateless, so
// the access token stays valid until it expires.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	_, err = decodeData[any](resp, http.StatusOK)
	return err
}

// ============================================================================
// Users
// ============================================================================

// ListUsers lists users whose name contains nameContains, or everyone when
// it is empty.
func (s *Session) ListUsers(ctx context.Context, nameContains string) ([]UserResponse, error) {
	path := "/users"
	if nameContains != "" {
		path += "?" + url.Values{"name": {nameContains}}.Encode()
	}
	return sessionData[[]UserResponse](ctx, s, http.MethodGet, path, nil, http.StatusOK)
}

func (s *Session) GetUser(ctx context.Context, id int64) (*UserDetailResponse, error) {
	out, err := sessionData[UserDetailResponse](ctx, s, http.MethodGet, userPath(id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser requires the admin role.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDetailResponse, error) {
	out, err := sessionData[UserDetailResponse](ctx, s, http.MethodPost, "/users", req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser requires the admin role.
func (s *Session) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*UserDetailResponse, error) {
	out, err := sessionData[UserDetailResponse](ctx, s, http.MethodPut, userPath(id), req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser requires the admin role. The user's profile, role grants and
// tasks go with it.
func (s *Session) DeleteUser(ctx context.Context, id int64) error {
	_, err := sessionData[any](ctx, s, http.MethodDelete, userPath(id), nil, http.StatusOK)
	return err
}

func (s *Session) ListUserTasks(ctx context.Context, id int64, status string) ([]TaskResponse, error) {
	return sessionData[[]TaskResponse](ctx, s, http.MethodGet, withStatus(userPath(id)+"/tasks", status), nil, http.StatusOK)
}

// ============================================================================
// Roles
// ============================================================================

func (s *Session) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	return sessionData[[]RoleResponse](ctx, s, http.MethodGet, "/roles", nil, http.StatusOK)
}

func (s *Session) GetRole(ctx context.Context, id int64) (*RoleResponse, error) {
	out, err := sessionData[RoleResponse](ctx, s, http.MethodGet, fmt.Sprintf("/roles/%d", id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRole requires the admin role.
func (s *Session) CreateRole(ctx context.Context, name string) (*RoleResponse, error) {
	out, err := sessionData[RoleResponse](ctx, s, http.MethodPost, "/roles", CreateRoleRequest{Name: name}, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListUserRoles(ctx context.Context, id int64) ([]RoleResponse, error) {
	return sessionData[[]RoleResponse](ctx, s, http.MethodGet, userPath(id)+"/roles", nil, http.StatusOK)
}

// GrantRoles requires the admin role. Granting a role the user already
// holds is not an error; the returned envelope's message says so.
func (s *Session) GrantRoles(ctx context.Context, id int64, roles ...string) (*DataResponse[RoleGrantResponse], error) {
	resp, err := s.do(ctx, http.MethodPost, userPath(id)+"/roles", RoleGrantRequest{Roles: roles})
	if err != nil {
		return nil, err
	}
	return decodeData[RoleGrantResponse](resp, http.StatusOK)
}

// ============================================================================
// Tasks
// ============================================================================

func (s *Session) ListTasks(ctx context.Context, status string) ([]TaskResponse, error) {
	return sessionData[[]TaskResponse](ctx, s, http.MethodGet, withStatus("/tasks", status), nil, http.StatusOK)
}

func (s *Session) GetTask(ctx context.Context, id int64) (*TaskResponse, error) {
	out, err := sessionData[TaskResponse](ctx, s, http.MethodGet, taskPath(id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	out, err := sessionData[TaskResponse](ctx, s, http.MethodPost, "/tasks", req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*TaskResponse, error) {
	out, err := sessionData[TaskResponse](ctx, s, http.MethodPut, taskPath(id), req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteTask(ctx context.Context, id int64) error {
	_, err := sessionData[any](ctx, s, http.MethodDelete, taskPath(id), nil, http.StatusOK)
	return err
}

// ============================================================================
// helpers
// ============================================================================

func sessionData[T any](ctx context.Context, s *Session, method, path string, body any, expected int) (T, error) {
	var zero T
	resp, err := s.do(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	out, err := decodeData[T](resp, expected)
	if err != nil {
		return zero, err
	}
	return out.Data, nil
}

func userPath(id int64) string { return fmt.Sprintf("/users/%d", id) }
func taskPath(id int64) string { return fmt.Sprintf("/tasks/%d", id) }

func withStatus(path, status string) string {
	if status == "" {
		return path
	}
	return path + "?" + url.Values{"status": {status}}.Encode()
}
