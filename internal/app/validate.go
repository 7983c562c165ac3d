package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

// ValidateRepo reports logical failures in the result rather than as
// errors. Only infrastructure failures are returned as errors.
func (s *ServiceImpl) ValidateRepo(ctx context.Context, owner, repo string) (entity.RepoValidation, error) {
	if owner == "" {
		return entity.RepoValidation{}, usecase.Invalid("owner is required")
	}
	if repo == "" {
		return entity.RepoValidation{}, usecase.Invalid("repo is required")
	}

	client, err := s.github.ForOwner(ctx, owner)
	if err != nil {
		var notInstalled *usecase.NotInstalledError
		if errors.As(err, &notInstalled) {
			return entity.RepoValidation{
				Valid:   false,
				Error:   notInstalled.Error(),
				Details: notInstalled.InstallURL,
			}, nil
		}
		return entity.RepoValidation{}, err
	}

	if _, err := client.GetRepository(ctx, owner, repo); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return entity.RepoValidation{
				Valid: false,
				Error: fmt.Sprintf("Repository %s/%s was not found or the GitHub App has no access to it", owner, repo),
			}, nil
		}
		return entity.RepoValidation{}, err
	}

	return entity.RepoValidation{
		Valid:   true,
		Message: fmt.Sprintf("Repository %s/%s is accessible", owner, repo),
	}, nil
}
