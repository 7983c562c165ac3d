package repository

import (
	"context"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type ConfigRepository interface {
	Get(ctx context.Context) (entity.DashboardConfig, error)
	Save(ctx context.Context, cfg entity.DashboardConfig) error
}

// RoleRepository stores the whole role list as one document. There is no
// per-user upsert: callers read the list, modify it and write it back.
type RoleRepository interface {
	List(ctx context.Context) ([]entity.UserRoleEntry, error)
	ReplaceAll(ctx context.Context, entries []entity.UserRoleEntry) error
}
