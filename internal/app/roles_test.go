package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

var (
	superadmin = entity.SessionUser{Login: "root", Role: entity.RoleSuperadmin}
	admin      = entity.SessionUser{Login: "boss", Role: entity.RoleAdmin}
	developer  = entity.SessionUser{Login: "dev", Role: entity.RoleDeveloper}
)

func TestLoadRoles_MigratesLegacyOnce(t *testing.T) {
	env := newTestEnv(LegacyDefaults{
		AllowedUsers: []string{"alice", "bob"},
		UserRoles:    map[string]entity.Role{"Bob": entity.RoleAdmin, "carol": entity.RoleSuperadmin},
	})
	ctx := context.Background()

	entries, err := env.svc.ListUserRoles(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := map[string]entity.UserRoleEntry{}
	for _, e := range entries {
		byName[e.Username] = e
		assert.Equal(t, "env-migration", e.AddedBy)
		assert.Equal(t, testNow, e.AddedAt)
	}
	assert.Equal(t, entity.RoleDeveloper, byName["alice"].Role)
	assert.Equal(t, entity.RoleAdmin, byName["bob"].Role)
	assert.Equal(t, entity.RoleSuperadmin, byName["carol"].Role)

	require.NoError(t, env.roles.ReplaceAll(ctx, []entity.UserRoleEntry{{Username: "zoe", Role: entity.RoleGuest}}))
	entries, err = env.svc.ListUserRoles(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "migration does not run again once a list exists")
}

func TestResolveRole(t *testing.T) {
	env := newTestEnv(LegacyDefaults{UserRoles: map[string]entity.Role{"alice": entity.RoleAdmin}})
	ctx := context.Background()

	role, err := env.svc.ResolveRole(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, role)

	role, err = env.svc.ResolveRole(ctx, "stranger")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGuest, role)
}

func TestUpsertUserRole(t *testing.T) {
	env := newTestEnv(LegacyDefaults{AllowedUsers: []string{"alice"}})
	ctx := context.Background()

	entry, err := env.svc.UpsertUserRole(ctx, admin, "alice", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "boss", entry.AddedBy)

	_, err = env.svc.UpsertUserRole(ctx, admin, "bob", "Developer")
	require.NoError(t, err)

	entries, err := env.svc.ListUserRoles(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.RoleAdmin, entries[0].Role)
	assert.Equal(t, entity.RoleDeveloper, entries[1].Role)
}

func TestUpsertUserRole_Authorization(t *testing.T) {
	env := newTestEnv(LegacyDefaults{UserRoles: map[string]entity.Role{"carol": entity.RoleSuperadmin}})
	ctx := context.Background()

	_, err := env.svc.UpsertUserRole(ctx, developer, "alice", entity.RoleDeveloper)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = env.svc.UpsertUserRole(ctx, admin, "alice", entity.RoleSuperadmin)
	assert.ErrorIs(t, err, usecase.ErrForbidden, "admins cannot grant superadmin")

	_, err = env.svc.UpsertUserRole(ctx, admin, "carol", entity.RoleGuest)
	assert.ErrorIs(t, err, usecase.ErrForbidden, "admins cannot revoke superadmin")

	_, err = env.svc.UpsertUserRole(ctx, superadmin, "alice", entity.RoleSuperadmin)
	assert.NoError(t, err)

	_, err = env.svc.UpsertUserRole(ctx, admin, "alice", "owner")
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = env.svc.UpsertUserRole(ctx, admin, " ", entity.RoleGuest)
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestRemoveUserRole(t *testing.T) {
	env := newTestEnv(LegacyDefaults{
		AllowedUsers: []string{"alice", "boss"},
		UserRoles:    map[string]entity.Role{"carol": entity.RoleSuperadmin},
	})
	ctx := context.Background()

	require.NoError(t, env.svc.RemoveUserRole(ctx, admin, "alice"))

	assert.ErrorIs(t, env.svc.RemoveUserRole(ctx, admin, "alice"), usecase.ErrNotFound)
	assert.ErrorIs(t, env.svc.RemoveUserRole(ctx, admin, "Boss"), usecase.ErrValidation)
	assert.ErrorIs(t, env.svc.RemoveUserRole(ctx, admin, "carol"), usecase.ErrForbidden)
	assert.ErrorIs(t, env.svc.RemoveUserRole(ctx, developer, "carol"), usecase.ErrForbidden)
	require.NoError(t, env.svc.RemoveUserRole(ctx, superadmin, "carol"))

	entries, err := env.svc.ListUserRoles(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "boss", entries[0].Username)
}

// barrierRoles holds every List caller until n of them have read, so their
// read-modify-write cycles overlap.
type barrierRoles struct {
	repository.RoleRepository
	wg sync.WaitGroup
}

func newBarrierRoles(inner repository.RoleRepository, n int) *barrierRoles {
	b := &barrierRoles{RoleRepository: inner}
	b.wg.Add(n)
	return b
}

func (b *barrierRoles) List(ctx context.Context) ([]entity.UserRoleEntry, error) {
	entries, err := b.RoleRepository.List(ctx)
	b.wg.Done()
	b.wg.Wait()
	return entries, err
}

func TestUpsertUserRole_ConcurrentWritesLoseUpdate(t *testing.T) {
	env := newTestEnv(LegacyDefaults{})
	ctx := context.Background()
	require.NoError(t, env.roles.ReplaceAll(ctx, nil))

	env.svc.roles = newBarrierRoles(env.roles, 2)

	var wg sync.WaitGroup
	for _, name := range []string{"alice", "bob"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.UpsertUserRole(ctx, admin, name, entity.RoleDeveloper)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := env.roles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "both writers read an empty list, the last write wins")
}
