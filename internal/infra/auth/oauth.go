package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/github"
)

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIURL       string
	// Endpoint overrides the github.com OAuth endpoints when set.
	Endpoint *oauth2.Endpoint
}

// GitHubOAuth runs the web application flow and identifies the user with
// the resulting token.
type GitHubOAuth struct {
	cfg    oauth2.Config
	apiURL string
}

var _ repository.OAuthProvider = (*GitHubOAuth)(nil)

func NewGitHubOAuth(cfg OAuthConfig) *GitHubOAuth {
	endpoint := githuboauth.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	return &GitHubOAuth{
		cfg: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoint,
		},
		apiURL: cfg.APIURL,
	}
}

func (o *GitHubOAuth) AuthCodeURL(state string) string {
	return o.cfg.AuthCodeURL(state)
}

func (o *GitHubOAuth) Exchange(ctx context.Context, code string) (entity.SessionUser, error) {
	if o.cfg.ClientID == "" || o.cfg.ClientSecret == "" {
		return entity.SessionUser{}, fmt.Errorf("oauth: %w", usecase.ErrCredentialsMissing)
	}

	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return entity.SessionUser{}, fmt.Errorf("oauth exchange: %w: %s", usecase.ErrUnauthorized, err.Error())
	}

	client, err := github.NewRESTClient(o.cfg.Client(ctx, tok), o.apiURL)
	if err != nil {
		return entity.SessionUser{}, err
	}
	u, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return entity.SessionUser{}, fmt.Errorf("oauth user: %w: %s", usecase.ErrUpstream, err.Error())
	}

	return entity.SessionUser{
		Login:     u.GetLogin(),
		ID:        u.GetID(),
		AvatarURL: u.GetAvatarURL(),
		Email:     u.Email,
		Name:      u.Name,
	}, nil
}
