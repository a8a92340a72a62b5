package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

const (
	msgRolesGranted   = "Successfully added"
	msgRolesAlreadyOn = "All requested roles are already assigned"
	msgRolesNoMatch   = "None of the requested roles exist"
)

type RolesHandler struct {
	RolesService *service.RolesService
	UserService  *service.UserService
}

// HandleList lists every role.
//
//	@Summary		List roles
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	tasksdk.DataResponse[[]tasksdk.RoleResponse]	"Roles"
//	@Failure		401	{object}	tasksdk.ErrorResponse							"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toRoleResponses(roles), "")
}

// HandleGet returns a single role.
//
//	@Summary		Get role
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		int											true	"Role ID"
//	@Success		200	{object}	tasksdk.DataResponse[tasksdk.RoleResponse]	"Role"
//	@Failure		401	{object}	tasksdk.ErrorResponse						"Missing or invalid token"
//	@Failure		404	{object}	tasksdk.ErrorResponse						"Role not found"
//	@Security		BearerAuth
//	@Router			/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrRoleNotFound)
	if !ok {
		return
	}

	role, err := h.RolesService.GetRoleByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, tasksdk.RoleResponse{ID: role.ID, Name: role.Name}, "")
}

// HandleCreate adds a role.
//
//	@Summary		Create role
//	@Description	Requires the admin role.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.CreateRoleRequest						true	"Role"
//	@Success		201		{object}	tasksdk.DataResponse[tasksdk.RoleResponse]	"Created role"
//	@Failure		400		{object}	tasksdk.ErrorResponse							"Validation failed"
//	@Failure		403		{object}	tasksdk.ErrorResponse							"Admin role required"
//	@Failure		409		{object}	tasksdk.ErrorResponse							"Role name taken"
//	@Security		BearerAuth
//	@Router			/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req tasksdk.CreateRoleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	role, err := h.RolesService.CreateRole(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, tasksdk.RoleResponse{ID: role.ID, Name: role.Name}, "Role created successfully")
}

// HandleListForUser lists the roles a user holds.
//
//	@Summary		List a user's roles
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		int											true	"User ID"
//	@Success		200	{object}	tasksdk.DataResponse[[]tasksdk.RoleResponse]	"Roles held"
//	@Failure		404	{object}	tasksdk.ErrorResponse						"User not found"
//	@Security		BearerAuth
//	@Router			/users/{id}/roles [get].
func (h *RolesHandler) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrUserNotFound)
	if !ok {
		return
	}

	if _, err := h.UserService.GetUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	roles, err := h.RolesService.RolesForUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toRoleResponses(roles), "")
}

// HandleGrant grants roles to a user. Roles already held are skipped and
// unknown names are dropped, so repeating a request changes nothing.
//
//	@Summary		Grant roles to a user
//	@Description	Idempotent. Returns only the roles this call added; when every requested role is already held the list is empty. Names that match no role are ignored. Requires the admin role.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int													true	"User ID"
//	@Param			request	body		tasksdk.RoleGrantRequest							true	"Role names"
//	@Success		200		{object}	tasksdk.DataResponse[tasksdk.RoleGrantResponse]	"Granted roles"
//	@Failure		400		{object}	tasksdk.ErrorResponse								"Empty role list"
//	@Failure		403		{object}	tasksdk.ErrorResponse								"Admin role required"
//	@Failure		404		{object}	tasksdk.ErrorResponse								"User not found"
//	@Security		BearerAuth
//	@Router			/users/{id}/roles [post].
func (h *RolesHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrUserNotFound)
	if !ok {
		return
	}

	var req tasksdk.RoleGrantRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	grant, err := h.RolesService.GrantRoles(r.Context(), id, req.Roles)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := tasksdk.RoleGrantResponse{
		Granted:     toRoleResponses(grant.Granted),
		AlreadyHeld: grant.AlreadyHeld,
	}
	if resp.AlreadyHeld == nil {
		resp.AlreadyHeld = []string{}
	}

	msg := msgRolesGranted
	switch {
	case grant.NothingMatched():
		msg = msgRolesNoMatch
	case grant.NoOp():
		msg = msgRolesAlreadyOn
	}
	httpx.WriteData(w, http.StatusOK, resp, msg)
}
