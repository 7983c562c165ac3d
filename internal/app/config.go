package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

// GetConfig stores the defaults on first access, so later changes to the
// legacy repository list do not alter an existing dashboard.
func (s *ServiceImpl) GetConfig(ctx context.Context) (entity.DashboardConfig, error) {
	cfg, err := s.configs.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		return entity.DashboardConfig{}, err
	}

	repos := make([]entity.Repository, len(s.legacy.Repositories))
	copy(repos, s.legacy.Repositories)
	cfg = entity.DashboardConfig{
		AssignmentTimeLimit: entity.DefaultAssignmentTimeLimit,
		MaxDaysOpen:         entity.DefaultMaxDaysOpen,
		Repositories:        repos,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.configs.Save(ctx, cfg)
	})
	if err != nil {
		return entity.DashboardConfig{}, fmt.Errorf("store default config: %w", err)
	}
	s.log.Info("default config stored", slog.Int("repositories", len(repos)))
	return cfg, nil
}

func (s *ServiceImpl) SaveConfig(ctx context.Context, cfg entity.DashboardConfig) (entity.DashboardConfig, error) {
	if err := validateConfig(cfg); err != nil {
		return entity.DashboardConfig{}, err
	}
	if cfg.Repositories == nil {
		cfg.Repositories = []entity.Repository{}
	}

	if err := s.configs.Save(ctx, cfg); err != nil {
		return entity.DashboardConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg entity.DashboardConfig) error {
	if cfg.AssignmentTimeLimit <= 0 {
		return usecase.Invalid("assignmentTimeLimit must be greater than 0")
	}
	if cfg.MaxDaysOpen < 1 {
		return usecase.Invalid("maxDaysOpen must be at least 1")
	}
	for i, r := range cfg.Repositories {
		if r.Owner == "" {
			return usecase.Invalid("repositories[%d].owner is required", i)
		}
		if r.Name == "" {
			return usecase.Invalid("repositories[%d].name is required", i)
		}
	}
	return nil
}
