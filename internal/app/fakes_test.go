package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/kv"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/memory"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeGitHub struct {
	mu sync.Mutex

	prs        map[string][]entity.PullRequest
	details    map[string]entity.PullRequest
	reviews    map[string][]entity.Review
	listErr    map[string]error
	detailErr  error
	reviewsErr error

	labels      map[string]entity.Label
	created     []entity.Label
	added       []string
	removed     []string
	removeErr   error
	assignees   []entity.User
	reviewers   []entity.User
	removedRevs []string

	repos            map[string]bool
	collaborators    []entity.User
	contributors     []entity.User
	members          []entity.User
	collaboratorsErr error
	contributorsErr  error
	membersErr       error
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		prs:     make(map[string][]entity.PullRequest),
		details: make(map[string]entity.PullRequest),
		reviews: make(map[string][]entity.Review),
		listErr: make(map[string]error),
		labels:  make(map[string]entity.Label),
		repos:   make(map[string]bool),
	}
}

func prKey(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

func (f *fakeGitHub) ListOpenPullRequests(_ context.Context, owner, repo string) ([]entity.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[owner+"/"+repo]; err != nil {
		return nil, err
	}
	return f.prs[owner+"/"+repo], nil
}

func (f *fakeGitHub) GetPullRequest(_ context.Context, owner, repo string, number int) (entity.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detailErr != nil {
		return entity.PullRequest{}, f.detailErr
	}
	if d, ok := f.details[prKey(owner, repo, number)]; ok {
		return d, nil
	}
	for _, pr := range f.prs[owner+"/"+repo] {
		if pr.Number == number {
			pr.RequestedReviewers = f.reviewers
			return pr, nil
		}
	}
	return entity.PullRequest{}, usecase.ErrNotFound
}

func (f *fakeGitHub) ListReviews(_ context.Context, owner, repo string, number int) ([]entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reviewsErr != nil {
		return nil, f.reviewsErr
	}
	return f.reviews[prKey(owner, repo, number)], nil
}

func (f *fakeGitHub) GetLabel(_ context.Context, owner, repo, name string) (entity.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.labels[owner+"/"+repo+":"+name]
	if !ok {
		return entity.Label{}, usecase.ErrNotFound
	}
	return l, nil
}

func (f *fakeGitHub) CreateLabel(_ context.Context, owner, repo string, label entity.Label) (entity.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labels[owner+"/"+repo+":"+label.Name] = label
	f.created = append(f.created, label)
	return label, nil
}

func (f *fakeGitHub) AddLabel(_ context.Context, pr entity.PRRef, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, name)
	return nil
}

func (f *fakeGitHub) RemoveLabel(_ context.Context, pr entity.PRRef, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeGitHub) AddAssignees(_ context.Context, _ entity.PRRef, logins []string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range logins {
		f.assignees = append(f.assignees, entity.User{Login: l})
	}
	return f.assignees, nil
}

func (f *fakeGitHub) RemoveAssignees(_ context.Context, _ entity.PRRef, logins []string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignees = without(f.assignees, logins)
	return f.assignees, nil
}

func (f *fakeGitHub) RequestReviewers(_ context.Context, _ entity.PRRef, logins []string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range logins {
		f.reviewers = append(f.reviewers, entity.User{Login: l})
	}
	return f.reviewers, nil
}

func (f *fakeGitHub) RemoveReviewers(_ context.Context, _ entity.PRRef, logins []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedRevs = append(f.removedRevs, logins...)
	f.reviewers = without(f.reviewers, logins)
	return nil
}

func (f *fakeGitHub) GetRepository(_ context.Context, owner, repo string) (entity.RepoRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.repos[owner+"/"+repo] {
		return entity.RepoRef{}, usecase.ErrNotFound
	}
	return entity.RepoRef{Owner: owner, Name: repo}, nil
}

func (f *fakeGitHub) ListCollaborators(context.Context, string, string) ([]entity.User, error) {
	return f.collaborators, f.collaboratorsErr
}

func (f *fakeGitHub) ListContributors(context.Context, string, string) ([]entity.User, error) {
	return f.contributors, f.contributorsErr
}

func (f *fakeGitHub) ListOrgMembers(context.Context, string) ([]entity.User, error) {
	return f.members, f.membersErr
}

func without(users []entity.User, logins []string) []entity.User {
	out := []entity.User{}
	for _, u := range users {
		drop := false
		for _, l := range logins {
			if strings.EqualFold(u.Login, l) {
				drop = true
			}
		}
		if !drop {
			out = append(out, u)
		}
	}
	return out
}

// fakeProvider serves one client for every owner except those in errs.
type fakeProvider struct {
	client *fakeGitHub
	errs   map[string]error
}

func (p *fakeProvider) ForOwner(_ context.Context, owner string) (repository.GitHubClient, error) {
	if err, ok := p.errs[owner]; ok {
		return nil, err
	}
	return p.client, nil
}

type testEnv struct {
	svc      *ServiceImpl
	gh       *fakeGitHub
	provider *fakeProvider
	configs  repository.ConfigRepository
	roles    repository.RoleRepository
}

func newTestEnv(legacy LegacyDefaults) *testEnv {
	gh := newFakeGitHub()
	provider := &fakeProvider{client: gh, errs: make(map[string]error)}
	blobs := memory.NewBlobStorage()
	configs := kv.NewConfigStorage(blobs)
	roles := kv.NewRoleStorage(blobs)

	svc := NewService(Deps{
		GitHub:      provider,
		Configs:     configs,
		Roles:       roles,
		TxManager:   memory.NewTxManager(),
		Legacy:      legacy,
		FanoutLimit: 4,
		Now:         func() time.Time { return testNow },
		Log:         logger.Discard(),
	})
	return &testEnv{svc: svc, gh: gh, provider: provider, configs: configs, roles: roles}
}

func openPR(number int, openFor time.Duration) entity.PullRequest {
	return entity.PullRequest{
		ID:        int64(number),
		Number:    number,
		Title:     fmt.Sprintf("PR %d", number),
		State:     "open",
		CreatedAt: testNow.Add(-openFor),
		User:      entity.User{ID: 100, Login: "author"},
	}
}
