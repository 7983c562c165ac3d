package app

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/prs"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
)

func (s *ServiceImpl) ListPRs(ctx context.Context, opts usecase.ListOptions) (entity.PRListing, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return entity.PRListing{}, err
	}

	list, repoErrors := s.collect(ctx, cfg)
	if err := ctx.Err(); err != nil {
		return entity.PRListing{}, err
	}

	if opts.Filters != nil || opts.Repos != nil {
		filters, repos := opts.Filters, opts.Repos
		if filters == nil {
			filters, _ = prs.ParseFilters(prs.AllFilters)
		}
		if repos == nil {
			repos = enabledRepoSet(cfg)
		}
		list = prs.Filter(list, filters, repos)
	}
	if opts.Sort != "" {
		list = prs.Sort(list, prs.SortMode(opts.Sort))
	}

	listing := entity.PRListing{PRs: list, Config: cfg}
	if len(repoErrors) > 0 {
		listing.Errors = repoErrors
	}
	return listing, nil
}

func (s *ServiceImpl) GetStats(ctx context.Context) (entity.PRStats, error) {
	listing, err := s.ListPRs(ctx, usecase.ListOptions{})
	if err != nil {
		return entity.PRStats{}, err
	}
	return prs.Summarize(listing.PRs), nil
}

func (s *ServiceImpl) GetWorkload(ctx context.Context, view entity.WorkloadView, includeRegistered bool) ([]entity.UserWorkload, error) {
	switch view {
	case entity.WorkloadAssigned, entity.WorkloadCreated:
	default:
		return nil, usecase.Invalid("view must be %q or %q", entity.WorkloadAssigned, entity.WorkloadCreated)
	}

	listing, err := s.ListPRs(ctx, usecase.ListOptions{})
	if err != nil {
		return nil, err
	}

	var registered []string
	if includeRegistered {
		entries, err := s.loadRoles(ctx)
		if err != nil {
			return nil, err
		}
		registered = make([]string, 0, len(entries))
		for _, e := range entries {
			registered = append(registered, e.Username)
		}
	}

	return prs.Workload(listing.PRs, view, registered), nil
}

// collect fetches every enabled repository concurrently. A failing
// repository is reported by name and does not abort the others.
func (s *ServiceImpl) collect(ctx context.Context, cfg entity.DashboardConfig) ([]entity.EnhancedPR, map[string]string) {
	var enabled []entity.Repository
	for _, r := range cfg.Repositories {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}

	perRepo := make([][]entity.EnhancedPR, len(enabled))
	var (
		mu         sync.Mutex
		repoErrors = make(map[string]string)
	)

	var g errgroup.Group
	g.SetLimit(s.groupLimit())
	for i, repo := range enabled {
		g.Go(func() error {
			list, err := s.fetchRepo(ctx, repo.Ref(), cfg.Thresholds())
			if err != nil {
				s.log.Warn("repository fetch failed",
					slog.String("repo", repo.Ref().FullName()), logger.Err(err))
				mu.Lock()
				repoErrors[repo.Ref().FullName()] = err.Error()
				mu.Unlock()
				return nil
			}
			perRepo[i] = list
			return nil
		})
	}
	_ = g.Wait()

	out := []entity.EnhancedPR{}
	for _, list := range perRepo {
		out = append(out, list...)
	}
	return out, repoErrors
}

func (s *ServiceImpl) fetchRepo(ctx context.Context, repo entity.RepoRef, th entity.Thresholds) ([]entity.EnhancedPR, error) {
	client, err := s.github.ForOwner(ctx, repo.Owner)
	if err != nil {
		return nil, err
	}

	summaries, err := client.ListOpenPullRequests(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, err
	}

	out := make([]entity.EnhancedPR, len(summaries))

	// Separate group from the repository fan-out so a full outer group never
	// blocks the inner fetches.
	var g errgroup.Group
	g.SetLimit(s.groupLimit())
	for i, summary := range summaries {
		g.Go(func() error {
			out[i] = s.enrichOne(ctx, client, repo, summary, th)
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}

// enrichOne degrades to the list payload when the detail or review fetch
// fails.
func (s *ServiceImpl) enrichOne(
	ctx context.Context,
	client repository.GitHubClient,
	repo entity.RepoRef,
	summary entity.PullRequest,
	th entity.Thresholds,
) entity.EnhancedPR {
	in := prs.Input{Summary: summary, Repo: repo, Thresholds: th}

	detail, err := client.GetPullRequest(ctx, repo.Owner, repo.Name, summary.Number)
	if err != nil {
		s.log.Warn("pull request detail fetch failed",
			slog.String("repo", repo.FullName()), slog.Int("number", summary.Number), logger.Err(err))
	} else {
		in.Detail = &detail
	}

	reviews, err := client.ListReviews(ctx, repo.Owner, repo.Name, summary.Number)
	if err != nil {
		s.log.Warn("pull request reviews fetch failed",
			slog.String("repo", repo.FullName()), slog.Int("number", summary.Number), logger.Err(err))
	} else {
		in.Reviews = reviews
	}

	return prs.Enrich(in, s.now())
}

func (s *ServiceImpl) groupLimit() int {
	if s.fanoutLimit <= 0 {
		return -1
	}
	return s.fanoutLimit
}

func enabledRepoSet(cfg entity.DashboardConfig) map[string]bool {
	set := make(map[string]bool, len(cfg.Repositories))
	for _, r := range cfg.Repositories {
		if r.Enabled {
			set[r.Ref().FullName()] = true
		}
	}
	return set
}
