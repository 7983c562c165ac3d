package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type assignAssigneesRequest struct {
	Owner      string   `json:"owner" validate:"required"`
	Repo       string   `json:"repo" validate:"required"`
	PullNumber int      `json:"pull_number" validate:"required,gt=0"`
	Assignees  []string `json:"assignees" validate:"required,min=1,dive,required"`
	Action     string   `json:"action" validate:"required,oneof=add remove"`
}

type assignReviewersRequest struct {
	Owner      string   `json:"owner" validate:"required"`
	Repo       string   `json:"repo" validate:"required"`
	PullNumber int      `json:"pull_number" validate:"required,gt=0"`
	Reviewers  []string `json:"reviewers" validate:"required,min=1,dive,required"`
	Action     string   `json:"action" validate:"required,oneof=add remove"`
}

type assigneesResponse struct {
	Success   bool          `json:"success"`
	Assignees []entity.User `json:"assignees"`
}

type reviewersResponse struct {
	Success   bool          `json:"success"`
	Reviewers []entity.User `json:"reviewers"`
}

// POST /api/assign-assignees
func (h *Handlers) AssignAssignees(w http.ResponseWriter, r *http.Request) {
	var req assignAssigneesRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ref := entity.PRRef{Owner: req.Owner, Repo: req.Repo, Number: req.PullNumber}
	users, err := h.service.ChangeAssignees(r.Context(), ref, req.Assignees, entity.AssignmentAction(req.Action))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update assignees")
		return
	}
	WriteJSON(w, http.StatusOK, assigneesResponse{Success: true, Assignees: users})
}

// POST /api/assign-reviewers
func (h *Handlers) AssignReviewers(w http.ResponseWriter, r *http.Request) {
	var req assignReviewersRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ref := entity.PRRef{Owner: req.Owner, Repo: req.Repo, Number: req.PullNumber}
	users, err := h.service.ChangeReviewers(r.Context(), ref, req.Reviewers, entity.AssignmentAction(req.Action))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update reviewers")
		return
	}
	WriteJSON(w, http.StatusOK, reviewersResponse{Success: true, Reviewers: users})
}
