package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

const migrationActor = "env-migration"

func (s *ServiceImpl) ListUserRoles(ctx context.Context) ([]entity.UserRoleEntry, error) {
	return s.loadRoles(ctx)
}

// ResolveRole returns guest for users missing from the role list.
func (s *ServiceImpl) ResolveRole(ctx context.Context, username string) (entity.Role, error) {
	entries, err := s.loadRoles(ctx)
	if err != nil {
		return "", err
	}
	if i := indexOf(entries, username); i >= 0 {
		return entries[i].Role, nil
	}
	return entity.RoleGuest, nil
}

// UpsertUserRole rewrites the whole list. Concurrent calls race: each reads
// the list before the other writes, so one of the updates can be lost.
func (s *ServiceImpl) UpsertUserRole(ctx context.Context, actor entity.SessionUser, username string, role entity.Role) (entity.UserRoleEntry, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return entity.UserRoleEntry{}, usecase.Invalid("username is required")
	}
	parsed, ok := entity.ParseRole(string(role))
	if !ok {
		return entity.UserRoleEntry{}, usecase.Invalid("role %q is not valid", role)
	}
	if err := authorizeRoleChange(actor, parsed); err != nil {
		return entity.UserRoleEntry{}, err
	}

	entries, err := s.loadRoles(ctx)
	if err != nil {
		return entity.UserRoleEntry{}, err
	}

	entry := entity.UserRoleEntry{
		Username: username,
		Role:     parsed,
		AddedAt:  s.now().UTC(),
		AddedBy:  actor.Login,
	}
	if i := indexOf(entries, username); i >= 0 {
		if err := authorizeRoleChange(actor, entries[i].Role); err != nil {
			return entity.UserRoleEntry{}, err
		}
		entries[i] = entry
	} else {
		entries = append(entries, entry)
	}

	if err := s.roles.ReplaceAll(ctx, entries); err != nil {
		return entity.UserRoleEntry{}, err
	}
	s.log.Info("user role updated",
		slog.String("username", username), slog.String("role", string(parsed)), slog.String("by", actor.Login))
	return entry, nil
}

func (s *ServiceImpl) RemoveUserRole(ctx context.Context, actor entity.SessionUser, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return usecase.Invalid("username is required")
	}
	if !entity.PermissionsFor(actor.Role).CanManageRoles {
		return usecase.ErrForbidden
	}
	if strings.EqualFold(username, actor.Login) {
		return usecase.Invalid("you cannot remove your own role")
	}

	entries, err := s.loadRoles(ctx)
	if err != nil {
		return err
	}
	i := indexOf(entries, username)
	if i < 0 {
		return fmt.Errorf("user %q: %w", username, usecase.ErrNotFound)
	}
	if err := authorizeRoleChange(actor, entries[i].Role); err != nil {
		return err
	}

	entries = append(entries[:i], entries[i+1:]...)
	if err := s.roles.ReplaceAll(ctx, entries); err != nil {
		return err
	}
	s.log.Info("user role removed", slog.String("username", username), slog.String("by", actor.Login))
	return nil
}

// authorizeRoleChange checks that actor may grant or revoke role.
func authorizeRoleChange(actor entity.SessionUser, role entity.Role) error {
	if !entity.PermissionsFor(actor.Role).CanManageRoles {
		return usecase.ErrForbidden
	}
	if role == entity.RoleSuperadmin && actor.Role != entity.RoleSuperadmin {
		return fmt.Errorf("%w: only a superadmin can grant or revoke superadmin", usecase.ErrForbidden)
	}
	return nil
}

// loadRoles migrates the legacy allow-list the first time no role list
// exists yet.
func (s *ServiceImpl) loadRoles(ctx context.Context) ([]entity.UserRoleEntry, error) {
	entries, err := s.roles.List(ctx)
	if err == nil {
		return entries, nil
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		return nil, err
	}

	migrated := s.legacyRoleEntries()
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.roles.ReplaceAll(ctx, migrated)
	})
	if err != nil {
		return nil, fmt.Errorf("migrate legacy roles: %w", err)
	}
	s.log.Info("legacy roles migrated", slog.Int("users", len(migrated)))
	return migrated, nil
}

func (s *ServiceImpl) legacyRoleEntries() []entity.UserRoleEntry {
	now := s.now().UTC()
	roles := make(map[string]entity.Role)
	var order []string

	put := func(username string, role entity.Role) {
		key := strings.ToLower(username)
		if _, ok := roles[key]; !ok {
			order = append(order, username)
		}
		roles[key] = role
	}
	for _, u := range s.legacy.AllowedUsers {
		put(u, entity.RoleDeveloper)
	}

	overrides := make([]string, 0, len(s.legacy.UserRoles))
	for u := range s.legacy.UserRoles {
		overrides = append(overrides, u)
	}
	sort.Strings(overrides)
	for _, u := range overrides {
		put(u, s.legacy.UserRoles[u])
	}

	out := make([]entity.UserRoleEntry, 0, len(order))
	for _, u := range order {
		out = append(out, entity.UserRoleEntry{
			Username: u,
			Role:     roles[strings.ToLower(u)],
			AddedAt:  now,
			AddedBy:  migrationActor,
		})
	}
	return out
}

func indexOf(entries []entity.UserRoleEntry, username string) int {
	for i, e := range entries {
		if strings.EqualFold(e.Username, username) {
			return i
		}
	}
	return -1
}
