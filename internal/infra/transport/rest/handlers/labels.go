package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/prs"
)

type toggleUrgentRequest struct {
	Owner    string `json:"owner" validate:"required"`
	Repo     string `json:"repo" validate:"required"`
	PRNumber int    `json:"prNumber" validate:"required,gt=0"`
	IsUrgent *bool  `json:"isUrgent" validate:"required"`
}

type toggleQuickRequest struct {
	Owner    string `json:"owner" validate:"required"`
	Repo     string `json:"repo" validate:"required"`
	PRNumber int    `json:"prNumber" validate:"required,gt=0"`
	IsQuick  *bool  `json:"isQuick" validate:"required"`
}

type toggleUrgentResponse struct {
	Success  bool `json:"success"`
	IsUrgent bool `json:"isUrgent"`
}

type toggleQuickResponse struct {
	Success bool `json:"success"`
	IsQuick bool `json:"isQuick"`
}

// POST /api/toggle-urgent
func (h *Handlers) ToggleUrgent(w http.ResponseWriter, r *http.Request) {
	var req toggleUrgentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ref := entity.PRRef{Owner: req.Owner, Repo: req.Repo, Number: req.PRNumber}
	if err := h.service.SetLabel(r.Context(), ref, prs.LabelUrgent, *req.IsUrgent); err != nil {
		h.writeServiceError(w, r, err, "Failed to toggle urgent label")
		return
	}
	WriteJSON(w, http.StatusOK, toggleUrgentResponse{Success: true, IsUrgent: *req.IsUrgent})
}

// POST /api/toggle-quick
func (h *Handlers) ToggleQuick(w http.ResponseWriter, r *http.Request) {
	var req toggleQuickRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ref := entity.PRRef{Owner: req.Owner, Repo: req.Repo, Number: req.PRNumber}
	if err := h.service.SetLabel(r.Context(), ref, prs.LabelQuick, *req.IsQuick); err != nil {
		h.writeServiceError(w, r, err, "Failed to toggle quick label")
		return
	}
	WriteJSON(w, http.StatusOK, toggleQuickResponse{Success: true, IsQuick: *req.IsQuick})
}
