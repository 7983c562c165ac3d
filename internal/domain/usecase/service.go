package usecase

import (
	"context"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type ListOptions struct {
	Sort string
	// Nil sets mean "no filtering"; empty non-nil sets filter everything out.
	Filters map[string]bool
	Repos   map[string]bool
}

type PullRequestUseCase interface {
	// ListPRs fans out over the enabled repositories; failing repositories
	// are reported in PRListing.Errors.
	ListPRs(ctx context.Context, opts ListOptions) (entity.PRListing, error)

	GetStats(ctx context.Context) (entity.PRStats, error)
	// GetWorkload groups open pull requests per user. With includeRegistered
	// every user from the role store is listed too, even without pull requests.
	GetWorkload(ctx context.Context, view entity.WorkloadView, includeRegistered bool) ([]entity.UserWorkload, error)

	// SetLabel ensures the label exists in the repository, then adds or
	// removes it on the pull request.
	SetLabel(ctx context.Context, pr entity.PRRef, label string, enabled bool) error

	ChangeAssignees(ctx context.Context, pr entity.PRRef, logins []string, action entity.AssignmentAction) ([]entity.User, error)
	ChangeReviewers(ctx context.Context, pr entity.PRRef, logins []string, action entity.AssignmentAction) ([]entity.User, error)

	ListCollaborators(ctx context.Context, owner, repo string) ([]entity.User, error)
	ValidateRepo(ctx context.Context, owner, repo string) (entity.RepoValidation, error)
}

type ConfigUseCase interface {
	GetConfig(ctx context.Context) (entity.DashboardConfig, error)
	// SaveConfig replaces the whole configuration.
	SaveConfig(ctx context.Context, cfg entity.DashboardConfig) (entity.DashboardConfig, error)
}

type RoleUseCase interface {
	ListUserRoles(ctx context.Context) ([]entity.UserRoleEntry, error)
	ResolveRole(ctx context.Context, username string) (entity.Role, error)
	UpsertUserRole(ctx context.Context, actor entity.SessionUser, username string, role entity.Role) (entity.UserRoleEntry, error)
	RemoveUserRole(ctx context.Context, actor entity.SessionUser, username string) error
}

type AuthUseCase interface {
	LoginURL(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code string) (string, entity.SessionUser, error)
	// Authenticate verifies a session token and refreshes the role from the
	// role store.
	Authenticate(ctx context.Context, token string) (entity.SessionUser, error)
}

// Service aggregates the use cases served by the HTTP layer.
type Service interface {
	PullRequestUseCase
	ConfigUseCase
	RoleUseCase
	AuthUseCase
}
