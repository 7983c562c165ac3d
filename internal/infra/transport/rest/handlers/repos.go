package handlers

import (
	"net/http"
)

type repoRequest struct {
	Owner string `json:"owner" validate:"required"`
	Repo  string `json:"repo" validate:"required"`
}

// GET /api/collaborators?owner=&repo=
func (h *Handlers) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	owner, err := queryString(r, "owner")
	if err != nil {
		badQuery(w, err)
		return
	}
	repo, err := queryString(r, "repo")
	if err != nil {
		badQuery(w, err)
		return
	}
	if owner == "" || repo == "" {
		WriteError(w, http.StatusBadRequest, ErrorResponse{Error: "owner and repo are required"})
		return
	}

	users, err := h.service.ListCollaborators(r.Context(), owner, repo)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch collaborators")
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// POST /api/validate-repo
//
// Logical outcomes, including a missing App installation, are reported
// with 200 and valid=false.
func (h *Handlers) ValidateRepo(w http.ResponseWriter, r *http.Request) {
	var req repoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.ValidateRepo(r.Context(), req.Owner, req.Repo)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to validate repository")
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
