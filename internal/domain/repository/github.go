package repository

import (
	"context"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

// GitHubClient is scoped to a single App installation. Implementations map
// GitHub 404 responses to usecase.ErrNotFound.
type GitHubClient interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]entity.PullRequest, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (entity.PullRequest, error)
	ListReviews(ctx context.Context, owner, repo string, number int) ([]entity.Review, error)

	GetLabel(ctx context.Context, owner, repo, name string) (entity.Label, error)
	CreateLabel(ctx context.Context, owner, repo string, label entity.Label) (entity.Label, error)
	AddLabel(ctx context.Context, pr entity.PRRef, name string) error
	RemoveLabel(ctx context.Context, pr entity.PRRef, name string) error

	AddAssignees(ctx context.Context, pr entity.PRRef, logins []string) ([]entity.User, error)
	RemoveAssignees(ctx context.Context, pr entity.PRRef, logins []string) ([]entity.User, error)
	RequestReviewers(ctx context.Context, pr entity.PRRef, logins []string) ([]entity.User, error)
	RemoveReviewers(ctx context.Context, pr entity.PRRef, logins []string) error

	GetRepository(ctx context.Context, owner, repo string) (entity.RepoRef, error)
	ListCollaborators(ctx context.Context, owner, repo string) ([]entity.User, error)
	ListContributors(ctx context.Context, owner, repo string) ([]entity.User, error)
	ListOrgMembers(ctx context.Context, org string) ([]entity.User, error)
}

// GitHubClientProvider hands out installation-scoped clients per owner.
type GitHubClientProvider interface {
	ForOwner(ctx context.Context, owner string) (GitHubClient, error)
}
