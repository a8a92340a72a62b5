package tasksdk

import (
	"strings"
	"unicode/utf8"
)

const (
	requiredReason = "required"
	minNameLen     = 3
	maxFieldLen    = 255
	maxPasswordLen = 128
)

// Validate checks the fields of a user creation request. It returns a map
// of field names to reasons, or nil when the request is valid.
func (r CreateUserRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateName(errs, "name", r.Name)
	validateRequired(errs, "username", r.Username)
	validateEmail(errs, "email", r.Email)
	validatePassword(errs, "password", r.Password)

	return nilIfEmpty(errs)
}

// Validate checks only the fields that are present.
func (r UpdateUserRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Name != nil {
		validateName(errs, "name", *r.Name)
	}
	if r.Username != nil {
		validateRequired(errs, "username", *r.Username)
	}
	if r.Email != nil {
		validateEmail(errs, "email", *r.Email)
	}
	if r.Password != nil {
		validatePassword(errs, "password", *r.Password)
	}

	return nilIfEmpty(errs)
}

func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = requiredReason
	}
	if r.Password == "" {
		errs["password"] = requiredReason
	}
	return nilIfEmpty(errs)
}

func (r CreateRoleRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateName(errs, "name", r.Name)
	return nilIfEmpty(errs)
}

// Validate accepts any list. The server checks the user exists before it
// rejects an empty list, and unknown names are dropped there too.
func (r RoleGrantRequest) Validate() map[string]string {
	return nil
}

func (r CreateTaskRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateName(errs, "title", r.Title)
	if r.Status != "" {
		validateStatus(errs, "status", r.Status)
	}
	if r.UserID <= 0 {
		errs["user_id"] = requiredReason
	}

	return nilIfEmpty(errs)
}

func (r UpdateTaskRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Title != nil {
		validateName(errs, "title", *r.Title)
	}
	if r.Status != nil {
		validateStatus(errs, "status", *r.Status)
	}
	if r.UserID != nil && *r.UserID <= 0 {
		errs["user_id"] = "must be a positive id"
	}

	return nilIfEmpty(errs)
}

func (r BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateName(errs, "admin_name", r.AdminName)
	validateRequired(errs, "admin_username", r.AdminUsername)
	validateEmail(errs, "admin_email", r.AdminEmail)
	validatePassword(errs, "admin_password", r.AdminPassword)

	hasAdmin := false
	for _, n := range r.Roles {
		n = strings.TrimSpace(n)
		if n == "admin" {
			hasAdmin = true
		}
		if n != "" && utf8.RuneCountInString(n) < minNameLen {
			errs["roles"] = "role names must be at least 3 characters"
		}
	}
	if _, bad := errs["roles"]; !bad && !hasAdmin {
		errs["roles"] = `must include "admin"`
	}

	return nilIfEmpty(errs)
}

// ============================================================================
// Field rules
// ============================================================================

func validateRequired(errs map[string]string, field, v string) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		errs[field] = requiredReason
	case utf8.RuneCountInString(v) > maxFieldLen:
		errs[field] = "too long (max 255)"
	}
}

func validateName(errs map[string]string, field, v string) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		errs[field] = requiredReason
	case utf8.RuneCountInString(v) < minNameLen:
		errs[field] = "must be at least 3 characters"
	case utf8.RuneCountInString(v) > maxFieldLen:
		errs[field] = "too long (max 255)"
	}
}

func validateEmail(errs map[string]string, field, v string) {
	v = strings.TrimSpace(v)
	at := strings.Index(v, "@")
	switch {
	case v == "":
		errs[field] = requiredReason
	case at <= 0 || at == len(v)-1:
		errs[field] = "must be a valid email address"
	case len(v) > maxFieldLen:
		errs[field] = "too long (max 255)"
	}
}

func validatePassword(errs map[string]string, field, v string) {
	switch {
	case v == "":
		errs[field] = requiredReason
	case len(v) > maxPasswordLen:
		errs[field] = "too long (max 128)"
	}
}

func validateStatus(errs map[string]string, field, v string) {
	switch v {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
	default:
		errs[field] = "must be one of pending, in_progress, completed"
	}
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
