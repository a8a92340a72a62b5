package tasksdk

import "time"

// ============================================================================
// Envelopes
// ============================================================================

// DataResponse is the envelope around every successful response body.
type DataResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope around every error response body.
type ErrorResponse struct {
	// Error is a stable machine readable code such as "not_found".
	Error string `json:"error"`

	// Message is a human readable description.
	Message string `json:"message"`

	// Details maps offending fields to the rule they broke.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by POST /auth/login. RefreshToken is always
// null; there is no refresh flow.
type TokenResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken *string `json:"refresh_token"`
}

// ============================================================================
// User Types
// ============================================================================

type UserResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	Address *string `json:"address"`
	Mobile  *string `json:"mobile"`
}

// UserDetailResponse is a user together with its profile.
type UserDetailResponse struct {
	UserResponse
	Profile ProfileResponse `json:"profile"`
}

type CreateUserRequest struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Address  *string `json:"address,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Address  *string `json:"address,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
}

// ============================================================================
// Role Types
// ============================================================================

type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateRoleRequest struct {
	Name string `json:"name"`
}

// RoleGrantRequest names the roles to grant to the user in the path.
type RoleGrantRequest struct {
	Roles []string `json:"roles"`
}

// RoleGrantResponse lists the roles the call actually added. Granted is
// empty when every requested role was already held.
type RoleGrantResponse struct {
	Granted     []RoleResponse `json:"granted"`
	AlreadyHeld []string       `json:"already_held"`
}

// ============================================================================
// Task Types
// ============================================================================

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"` // defaults to pending
	UserID      int64  `json:"user_id"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	UserID      *int64  `json:"user_id,omitempty"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest seeds an empty installation with roles and the first
// administrator. Roles must include "admin".
type BootstrapRequest struct {
	AdminName     string   `json:"admin_name"`
	AdminUsername string   `json:"admin_username"`
	AdminEmail    string   `json:"admin_email"`
	AdminPassword string   `json:"admin_password"`
	Roles         []string `json:"roles"`
}

type BootstrapResponse struct {
	AdminUserID int64          `json:"admin_user_id"`
	Roles       []RoleResponse `json:"roles"`
}

// ============================================================================
// Health Types
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
