package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/prs"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

var labelDefinitions = map[string]entity.Label{
	prs.LabelUrgent: {
		Name:        prs.LabelUrgent,
		Color:       "d73a4a",
		Description: "Urgent PR - needs immediate attention",
	},
	prs.LabelQuick: {
		Name:        prs.LabelQuick,
		Color:       "0e8a16",
		Description: "Quick PR - small change, fast review",
	},
}

func (s *ServiceImpl) SetLabel(ctx context.Context, pr entity.PRRef, label string, enabled bool) error {
	def, ok := labelDefinitions[label]
	if !ok {
		return usecase.Invalid("unsupported label %q", label)
	}
	if err := validatePRRef(pr); err != nil {
		return err
	}

	client, err := s.github.ForOwner(ctx, pr.Owner)
	if err != nil {
		return err
	}

	if err := ensureLabel(ctx, client, pr.Owner, pr.Repo, def); err != nil {
		return err
	}

	if enabled {
		return client.AddLabel(ctx, pr, def.Name)
	}
	if err := client.RemoveLabel(ctx, pr, def.Name); err != nil && !errors.Is(err, usecase.ErrNotFound) {
		return err
	}
	return nil
}

func ensureLabel(ctx context.Context, client repository.GitHubClient, owner, repo string, def entity.Label) error {
	_, err := client.GetLabel(ctx, owner, repo, def.Name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		return err
	}
	if _, err := client.CreateLabel(ctx, owner, repo, def); err != nil {
		return fmt.Errorf("create label %q: %w", def.Name, err)
	}
	return nil
}

func validatePRRef(pr entity.PRRef) error {
	switch {
	case pr.Owner == "":
		return usecase.Invalid("owner is required")
	case pr.Repo == "":
		return usecase.Invalid("repo is required")
	case pr.Number <= 0:
		return usecase.Invalid("pull request number must be positive")
	}
	return nil
}
