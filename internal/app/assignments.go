package app

import (
	"context"
	"log/slog"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
)

func (s *ServiceImpl) ChangeAssignees(ctx context.Context, pr entity.PRRef, logins []string, action entity.AssignmentAction) ([]entity.User, error) {
	if err := validateAssignment(pr, logins, action, "assignees"); err != nil {
		return nil, err
	}

	client, err := s.github.ForOwner(ctx, pr.Owner)
	if err != nil {
		return nil, err
	}

	if action == entity.ActionAdd {
		return client.AddAssignees(ctx, pr, logins)
	}
	return client.RemoveAssignees(ctx, pr, logins)
}

// ChangeReviewers returns the requested reviewers after the change. GitHub
// answers a removal without the updated list, so it is read back.
func (s *ServiceImpl) ChangeReviewers(ctx context.Context, pr entity.PRRef, logins []string, action entity.AssignmentAction) ([]entity.User, error) {
	if err := validateAssignment(pr, logins, action, "reviewers"); err != nil {
		return nil, err
	}

	client, err := s.github.ForOwner(ctx, pr.Owner)
	if err != nil {
		return nil, err
	}

	if action == entity.ActionAdd {
		return client.RequestReviewers(ctx, pr, logins)
	}

	if err := client.RemoveReviewers(ctx, pr, logins); err != nil {
		return nil, err
	}
	detail, err := client.GetPullRequest(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		s.log.Warn("reviewers read-back failed",
			slog.String("owner", pr.Owner), slog.String("repo", pr.Repo), slog.Int("number", pr.Number), logger.Err(err))
		return []entity.User{}, nil
	}
	return detail.RequestedReviewers, nil
}

func validateAssignment(pr entity.PRRef, logins []string, action entity.AssignmentAction, field string) error {
	if err := validatePRRef(pr); err != nil {
		return err
	}
	if len(logins) == 0 {
		return usecase.Invalid("%s must not be empty", field)
	}
	for _, l := range logins {
		if l == "" {
			return usecase.Invalid("%s must not contain empty logins", field)
		}
	}
	if action != entity.ActionAdd && action != entity.ActionRemove {
		return usecase.Invalid("action must be %q or %q", entity.ActionAdd, entity.ActionRemove)
	}
	return nil
}
