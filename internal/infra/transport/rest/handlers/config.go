package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type repositoryRequest struct {
	Owner   string `json:"owner" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

// warningThreshold is accepted from older clients and ignored.
type saveConfigRequest struct {
	AssignmentTimeLimit *float64            `json:"assignmentTimeLimit" validate:"required,gt=0"`
	MaxDaysOpen         *int                `json:"maxDaysOpen" validate:"omitempty,gte=1"`
	WarningThreshold    *float64            `json:"warningThreshold" validate:"omitempty,gte=0,lte=100"`
	Repositories        []repositoryRequest `json:"repositories" validate:"required,dive"`
}

func (req saveConfigRequest) toEntity() entity.DashboardConfig {
	cfg := entity.DashboardConfig{
		AssignmentTimeLimit: *req.AssignmentTimeLimit,
		MaxDaysOpen:         entity.DefaultMaxDaysOpen,
		Repositories:        make([]entity.Repository, 0, len(req.Repositories)),
	}
	if req.MaxDaysOpen != nil {
		cfg.MaxDaysOpen = *req.MaxDaysOpen
	}
	for _, repo := range req.Repositories {
		cfg.Repositories = append(cfg.Repositories, entity.Repository{
			Owner:   repo.Owner,
			Name:    repo.Name,
			Enabled: *repo.Enabled,
		})
	}
	return cfg
}

type saveConfigResponse struct {
	Success bool                   `json:"success"`
	Config  entity.DashboardConfig `json:"config"`
}

// GET /api/config
func (h *Handlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to load config")
		return
	}
	WriteJSON(w, http.StatusOK, cfg)
}

// POST /api/config
func (h *Handlers) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req saveConfigRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cfg, err := h.service.SaveConfig(r.Context(), req.toEntity())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to save config")
		return
	}
	WriteJSON(w, http.StatusOK, saveConfigResponse{Success: true, Config: cfg})
}
