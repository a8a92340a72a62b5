package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

// writeServiceError maps a service error onto the wire. Anything it does
// not recognise is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		tasksdk.ErrValidation.WithMessage(ve.Message).WithDetails(ve.Details).WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		tasksdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrRoleNotFound):
		tasksdk.ErrRoleNotFound.WriteError(w)
	case errors.Is(err, service.ErrTaskNotFound):
		tasksdk.ErrTaskNotFound.WriteError(w)
	case errors.Is(err, service.ErrUserExists):
		tasksdk.ErrUserExists.WriteError(w)
	case errors.Is(err, service.ErrRoleExists):
		tasksdk.ErrRoleExists.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		tasksdk.ErrServerError.WriteError(w)
	}
}

// decodeRequest reads the body into v and runs its validation. It writes
// the error response itself and reports whether the handler may go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface {
	Validate() map[string]string
}) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		slogx.FromContext(r.Context()).Info("bad request body", "error", err)
		tasksdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	if errs := v.Validate(); errs != nil {
		tasksdk.ErrValidation.WithDetails(errs).WriteError(w)
		return false
	}
	return true
}

// pathID reads {id} from the path, answering 404 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request, notFound *tasksdk.APIError) (int64, bool) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		notFound.WriteError(w)
		return 0, false
	}
	return id, true
}
