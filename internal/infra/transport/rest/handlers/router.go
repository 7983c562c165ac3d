package handlers

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

func NewRouter(h *Handlers, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/openapi.json", h.OpenAPI)

		r.Get("/prs", h.ListPRs)
		r.Get("/config", h.GetConfig)
		r.Get("/collaborators", h.ListCollaborators)
		r.Get("/stats", h.GetStats)
		r.With(h.OptionalUser).Get("/team-workload", h.GetTeamWorkload)
		r.Get("/auth-login", h.AuthLogin)
		r.Get("/auth-callback", h.AuthCallback)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireUser)

			r.Get("/auth-me", h.AuthMe)

			r.With(RequirePermission(canAccessConfig)).Post("/config", h.SaveConfig)

			r.With(RequirePermission(canToggle)).Post("/toggle-urgent", h.ToggleUrgent)
			r.With(RequirePermission(canToggle)).Post("/toggle-quick", h.ToggleQuick)

			r.With(RequirePermission(canManageAssignees)).Post("/assign-assignees", h.AssignAssignees)
			r.With(RequirePermission(canManageAssignees)).Post("/assign-reviewers", h.AssignReviewers)

			r.With(RequirePermission(canManageRepositories)).Post("/validate-repo", h.ValidateRepo)

			r.Group(func(r chi.Router) {
				r.Use(RequirePermission(canManageRoles))
				r.Get("/get-user-roles", h.GetUserRoles)
				r.Get("/manage-user-role", h.GetUserRole)
				r.Post("/manage-user-role", h.UpsertUserRole)
				r.Delete("/manage-user-role", h.RemoveUserRole)
			})
		})
	})

	return r
}

func canAccessConfig(p entity.Permissions) bool       { return p.CanAccessConfig }
func canToggle(p entity.Permissions) bool             { return p.CanToggleUrgentQuick }
func canManageAssignees(p entity.Permissions) bool    { return p.CanManageAssignees }
func canManageRepositories(p entity.Permissions) bool { return p.CanManageRepositories }
func canManageRoles(p entity.Permissions) bool        { return p.CanManageRoles }
