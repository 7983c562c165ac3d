package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type workloadResponse struct {
	View  entity.WorkloadView   `json:"view"`
	Users []entity.UserWorkload `json:"users"`
}

// GET /api/stats
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to compute stats")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// GET /api/team-workload?view=assigned|created
// Open to everyone; registered users without pull requests are listed only for
// callers allowed to manage roles.
func (h *Handlers) GetTeamWorkload(w http.ResponseWriter, r *http.Request) {
	view, err := queryString(r, "view")
	if err != nil {
		badQuery(w, err)
		return
	}
	if view == "" {
		view = string(entity.WorkloadAssigned)
	}

	// Registered users come from the role list, which only role managers may read.
	user, ok := UserFromContext(r.Context())
	includeRegistered := ok && user.Perms.CanManageRoles

	users, err := h.service.GetWorkload(r.Context(), entity.WorkloadView(view), includeRegistered)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to compute team workload")
		return
	}
	WriteJSON(w, http.StatusOK, workloadResponse{View: entity.WorkloadView(view), Users: users})
}
