package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrRoleNotFound       = errors.New("role_not_found")
	ErrTaskNotFound       = errors.New("task_not_found")
	ErrUserExists         = errors.New("user_already_exists")
	ErrRoleExists         = errors.New("role_already_exists")
	ErrValidation         = errors.New("validation_error")
)

// ValidationError names the rules a request broke. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation_error: " + e.Message
	}
	fields := make([]string, 0, len(e.Details))
	for k, v := range e.Details {
		fields = append(fields, k+": "+v)
	}
	sort.Strings(fields)
	return "validation_error: " + e.Message + " (" + strings.Join(fields, ", ") + ")"
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		Message: "invalid " + field,
		Details: map[string]string{field: reason},
	}
}
