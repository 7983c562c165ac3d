//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/app"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/auth"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/kv"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/pg"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/transport/rest/apidoc"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/transport/rest/handlers"
)

// stubGitHub serves open pull requests from memory. Methods the tests do
// not reach stay on the nil embedded interface.
type stubGitHub struct {
	repository.GitHubClient

	mu  sync.Mutex
	prs map[string][]entity.PullRequest
}

func (s *stubGitHub) ForOwner(_ context.Context, owner string) (repository.GitHubClient, error) {
	if owner == "not-installed" {
		return nil, &usecase.NotInstalledError{Owner: owner, InstallURL: "https://github.com/apps/hot-potato/installations/new"}
	}
	return s, nil
}

func (s *stubGitHub) ListOpenPullRequests(_ context.Context, owner, repo string) ([]entity.PullRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prs[owner+"/"+repo], nil
}

func (s *stubGitHub) GetPullRequest(_ context.Context, owner, repo string, number int) (entity.PullRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pr := range s.prs[owner+"/"+repo] {
		if pr.Number == number {
			return pr, nil
		}
	}
	return entity.PullRequest{}, usecase.ErrNotFound
}

func (s *stubGitHub) ListReviews(context.Context, string, string, int) ([]entity.Review, error) {
	return nil, nil
}

func (s *stubGitHub) GetRepository(_ context.Context, owner, repo string) (entity.RepoRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prs[owner+"/"+repo]; !ok {
		return entity.RepoRef{}, usecase.ErrNotFound
	}
	return entity.RepoRef{Owner: owner, Name: repo}, nil
}

// stubOAuth treats the authorization code as the GitHub login.
type stubOAuth struct{}

func (stubOAuth) AuthCodeURL(state string) string {
	return "https://github.com/login/oauth/authorize?state=" + state
}

func (stubOAuth) Exchange(_ context.Context, code string) (entity.SessionUser, error) {
	return entity.SessionUser{Login: code, ID: int64(len(code))}, nil
}

type testClient struct {
	server *httptest.Server
	client *http.Client
	github *stubGitHub
}

type clientOptions struct {
	legacy app.LegacyDefaults
}

func newTestClient(t *testing.T, db *sqlx.DB, opts clientOptions) *testClient {
	t.Helper()

	log := logger.Discard()
	blobs := pg.NewBlobStorage(db)

	tokens, err := auth.NewJWTIssuer("e2e-secret", time.Hour, time.Now)
	require.NoError(t, err)

	gh := &stubGitHub{prs: make(map[string][]entity.PullRequest)}

	svc := app.NewService(app.Deps{
		GitHub:      gh,
		Configs:     kv.NewConfigStorage(blobs),
		Roles:       kv.NewRoleStorage(blobs),
		TxManager:   pg.NewTxManager(db, log),
		OAuth:       stubOAuth{},
		Tokens:      tokens,
		Legacy:      opts.legacy,
		FanoutLimit: 4,
		Log:         log,
	})

	doc, err := apidoc.Load(context.Background())
	require.NoError(t, err)

	server := httptest.NewServer(handlers.NewRouter(handlers.NewHandlers(svc, doc, log), log))
	t.Cleanup(server.Close)

	return &testClient{server: server, client: server.Client(), github: gh}
}

func (c *testClient) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// login runs the OAuth callback for login and returns the session token.
func (c *testClient) login(t *testing.T, login string) string {
	t.Helper()

	resp := c.do(t, http.MethodGet, "/api/auth-callback?code="+login, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (c *testClient) addPRs(repo string, prs ...entity.PullRequest) {
	c.github.mu.Lock()
	defer c.github.mu.Unlock()
	c.github.prs[repo] = append(c.github.prs[repo], prs...)
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func openPR(number int, login string, opened time.Time, assignees ...string) entity.PullRequest {
	pr := entity.PullRequest{
		ID:        int64(number),
		Number:    number,
		Title:     fmt.Sprintf("PR %d", number),
		State:     "open",
		CreatedAt: opened,
		UpdatedAt: opened,
		User:      entity.User{ID: 100, Login: login},
	}
	for i, a := range assignees {
		pr.Assignees = append(pr.Assignees, entity.User{ID: int64(200 + i), Login: a})
	}
	return pr
}
