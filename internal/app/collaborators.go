package app

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
)

var excludedLogins = map[string]bool{
	"dependabot":     true,
	"github-actions": true,
	"renovate":       true,
	"copilot":        true,
}

// ListCollaborators merges repository collaborators, contributors and
// organization members. Each source may fail on its own; the call fails only
// when all of them do.
func (s *ServiceImpl) ListCollaborators(ctx context.Context, owner, repo string) ([]entity.User, error) {
	if owner == "" {
		return nil, usecase.Invalid("owner is required")
	}
	if repo == "" {
		return nil, usecase.Invalid("repo is required")
	}

	client, err := s.github.ForOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	sources := []struct {
		name  string
		fetch func(context.Context) ([]entity.User, error)
	}{
		{"collaborators", func(ctx context.Context) ([]entity.User, error) { return client.ListCollaborators(ctx, owner, repo) }},
		{"contributors", func(ctx context.Context) ([]entity.User, error) { return client.ListContributors(ctx, owner, repo) }},
		{"org members", func(ctx context.Context) ([]entity.User, error) { return client.ListOrgMembers(ctx, owner) }},
	}

	results := make([][]entity.User, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			users, err := src.fetch(ctx)
			if err != nil {
				s.log.Debug("collaborator source failed",
					slog.String("source", src.name), slog.String("owner", owner), logger.Err(err))
				errs[i] = err
				return nil
			}
			results[i] = users
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(sources) {
		return nil, errors.Join(errs...)
	}

	var all []entity.User
	for _, users := range results {
		all = append(all, users...)
	}
	return mergeHumans(all), nil
}

func mergeHumans(users []entity.User) []entity.User {
	seen := make(map[string]bool, len(users))
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		key := strings.ToLower(u.Login)
		if key == "" || seen[key] || isBot(u) {
			continue
		}
		seen[key] = true
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Login) < strings.ToLower(out[j].Login)
	})
	return out
}

func isBot(u entity.User) bool {
	login := strings.ToLower(u.Login)
	return strings.EqualFold(u.Type, "Bot") ||
		strings.HasSuffix(login, "[bot]") ||
		excludedLogins[login]
}
