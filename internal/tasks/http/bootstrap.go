package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the service
//	@Description	Creates the given roles and the first admin user, and grants that user the admin role, in one transaction. Only available when a bootstrap token is configured and only while no users exist.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string											true	"Bootstrap token"
//	@Param			request				body		tasksdk.BootstrapRequest						true	"Bootstrap data"
//	@Success		201					{object}	tasksdk.DataResponse[tasksdk.BootstrapResponse]	"Admin user and roles"
//	@Failure		400					{object}	tasksdk.ErrorResponse							"Invalid request body or validation failed"
//	@Failure		401					{object}	tasksdk.ErrorResponse							"Missing or invalid bootstrap token, or already bootstrapped"
//	@Failure		404					{object}	tasksdk.ErrorResponse							"Bootstrap not enabled"
//	@Failure		500					{object}	tasksdk.ErrorResponse							"Internal server error"
//	@Router			/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		tasksdk.NewAPIError(http.StatusNotFound, tasksdk.ErrorCodeNotFound,
			"Bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get(tasksdk.BootstrapTokenHeader)
	if token == "" {
		tasksdk.ErrUnauthorized.WithMessage(
			"Bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body and validate
	var req tasksdk.BootstrapRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	// 4. Perform bootstrap
	res, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		Admin: domain.NewUser{
			Name:     strings.TrimSpace(req.AdminName),
			Username: strings.TrimSpace(req.AdminUsername),
			Email:    strings.TrimSpace(req.AdminEmail),
			Password: req.AdminPassword,
		},
		Roles: req.Roles,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			tasksdk.ErrUnauthorized.WithMessage("System has already been bootstrapped").WriteError(w)
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			tasksdk.ErrUnauthorized.WithMessage("Invalid bootstrap token").WriteError(w)
		case errors.Is(err, service.ErrBootstrapDisabled):
			tasksdk.NewAPIError(http.StatusNotFound, tasksdk.ErrorCodeNotFound,
				"Bootstrap endpoint is not enabled").WriteError(w)
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	// 5. Respond with what was created
	httpx.WriteData(w, http.StatusCreated, tasksdk.BootstrapResponse{
		AdminUserID: res.Admin.ID,
		Roles:       toRoleResponses(res.Roles),
	}, "Bootstrap complete")
}
