package handlers

import (
	"context"
	"sync"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

var _ usecase.Service = (*fakeService)(nil)

type labelCall struct {
	ref     entity.PRRef
	label   string
	enabled bool
}

type assignCall struct {
	ref    entity.PRRef
	logins []string
	action entity.AssignmentAction
}

type fakeService struct {
	mu sync.Mutex

	listing    entity.PRListing
	listErr    error
	lastOpts   *usecase.ListOptions
	stats      entity.PRStats
	workload   []entity.UserWorkload
	lastView   entity.WorkloadView
	registered []entity.UserWorkload
	labelCalls []labelCall
	labelErr   error
	assigned   []assignCall
	users      []entity.User
	validation entity.RepoValidation
	config     entity.DashboardConfig
	saved      *entity.DashboardConfig
	saveErr    error
	roles      []entity.UserRoleEntry
	lastActor  entity.SessionUser
	removeErr  error
	panicOn    string
}

func (f *fakeService) ListPRs(_ context.Context, opts usecase.ListOptions) (entity.PRListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOn == "prs" {
		panic("boom")
	}
	f.lastOpts = &opts
	return f.listing, f.listErr
}

func (f *fakeService) GetStats(context.Context) (entity.PRStats, error) {
	return f.stats, nil
}

func (f *fakeService) GetWorkload(_ context.Context, view entity.WorkloadView, includeRegistered bool) ([]entity.UserWorkload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastView = view
	if view != entity.WorkloadAssigned && view != entity.WorkloadCreated {
		return nil, usecase.Invalid("view must be %q or %q", entity.WorkloadAssigned, entity.WorkloadCreated)
	}
	if includeRegistered {
		return append(append([]entity.UserWorkload{}, f.workload...), f.registered...), nil
	}
	return f.workload, nil
}

func (f *fakeService) SetLabel(_ context.Context, pr entity.PRRef, label string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labelCalls = append(f.labelCalls, labelCall{ref: pr, label: label, enabled: enabled})
	return f.labelErr
}

func (f *fakeService) ChangeAssignees(_ context.Context, pr entity.PRRef, logins []string, action entity.AssignmentAction) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assigned = append(f.assigned, assignCall{ref: pr, logins: logins, action: action})
	return f.users, nil
}

func (f *fakeService) ChangeReviewers(_ context.Context, pr entity.PRRef, logins []string, action entity.AssignmentAction) ([]entity.User, error) {
	return f.ChangeAssignees(context.Background(), pr, logins, action)
}

func (f *fakeService) ListCollaborators(context.Context, string, string) ([]entity.User, error) {
	return f.users, nil
}

func (f *fakeService) ValidateRepo(context.Context, string, string) (entity.RepoValidation, error) {
	return f.validation, nil
}

func (f *fakeService) GetConfig(context.Context) (entity.DashboardConfig, error) {
	return f.config, nil
}

func (f *fakeService) SaveConfig(_ context.Context, cfg entity.DashboardConfig) (entity.DashboardConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return entity.DashboardConfig{}, f.saveErr
	}
	f.saved = &cfg
	return cfg, nil
}

func (f *fakeService) ListUserRoles(context.Context) ([]entity.UserRoleEntry, error) {
	return f.roles, nil
}

func (f *fakeService) ResolveRole(_ context.Context, username string) (entity.Role, error) {
	for _, e := range f.roles {
		if e.Username == username {
			return e.Role, nil
		}
	}
	return entity.RoleGuest, nil
}

func (f *fakeService) UpsertUserRole(_ context.Context, actor entity.SessionUser, username string, role entity.Role) (entity.UserRoleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActor = actor
	return entity.UserRoleEntry{Username: username, Role: role, AddedBy: actor.Login}, nil
}

func (f *fakeService) RemoveUserRole(_ context.Context, actor entity.SessionUser, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActor = actor
	return f.removeErr
}

func (f *fakeService) LoginURL(context.Context) (string, error) {
	return "https://github.com/login/oauth/authorize?client_id=abc", nil
}

func (f *fakeService) CompleteLogin(_ context.Context, code string) (string, entity.SessionUser, error) {
	if code != "good" {
		return "", entity.SessionUser{}, usecase.ErrUnauthorized
	}
	return "session-token", sessionUser("octocat", entity.RoleDeveloper), nil
}

// Authenticate accepts "<role>-token".
func (f *fakeService) Authenticate(_ context.Context, token string) (entity.SessionUser, error) {
	switch token {
	case "superadmin-token":
		return sessionUser("root", entity.RoleSuperadmin), nil
	case "admin-token":
		return sessionUser("alice", entity.RoleAdmin), nil
	case "developer-token":
		return sessionUser("dave", entity.RoleDeveloper), nil
	case "guest-token":
		return sessionUser("gus", entity.RoleGuest), nil
	}
	return entity.SessionUser{}, usecase.ErrUnauthorized
}

func sessionUser(login string, role entity.Role) entity.SessionUser {
	return entity.SessionUser{
		Login: login,
		ID:    7,
		Role:  role,
		Perms: entity.PermissionsFor(role),
	}
}
