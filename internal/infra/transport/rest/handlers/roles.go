package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type upsertRoleRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=superadmin admin developer guest"`
}

type removeRoleRequest struct {
	Username string `json:"username" validate:"required"`
}

type rolesResponse struct {
	Users []entity.UserRoleEntry `json:"users"`
}

type userRoleResponse struct {
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
}

type upsertRoleResponse struct {
	Success bool                 `json:"success"`
	User    entity.UserRoleEntry `json:"user"`
}

// GET /api/get-user-roles
func (h *Handlers) GetUserRoles(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUserRoles(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to load user roles")
		return
	}
	WriteJSON(w, http.StatusOK, rolesResponse{Users: users})
}

// GET /api/manage-user-role?username=
func (h *Handlers) GetUserRole(w http.ResponseWriter, r *http.Request) {
	username, err := queryString(r, "username")
	if err != nil {
		badQuery(w, err)
		return
	}
	if username == "" {
		WriteError(w, http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	role, err := h.service.ResolveRole(r.Context(), username)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to resolve role")
		return
	}
	WriteJSON(w, http.StatusOK, userRoleResponse{Username: username, Role: role})
}

// POST /api/manage-user-role
func (h *Handlers) UpsertUserRole(w http.ResponseWriter, r *http.Request) {
	var req upsertRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	actor, _ := UserFromContext(r.Context())
	entry, err := h.service.UpsertUserRole(r.Context(), actor, req.Username, entity.Role(req.Role))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update role")
		return
	}
	WriteJSON(w, http.StatusOK, upsertRoleResponse{Success: true, User: entry})
}

// DELETE /api/manage-user-role
func (h *Handlers) RemoveUserRole(w http.ResponseWriter, r *http.Request) {
	var req removeRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	actor, _ := UserFromContext(r.Context())
	if err := h.service.RemoveUserRole(r.Context(), actor, req.Username); err != nil {
		h.writeServiceError(w, r, err, "Failed to remove role")
		return
	}
	WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
