package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v66/github"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

type AppConfig struct {
	AppID      int64
	PrivateKey []byte
	// InstallationID pins every owner to one installation and skips the
	// directory lookup.
	InstallationID int64
	AppSlug        string
	APIURL         string
	CacheTTL       time.Duration
	RateLimit      float64
	RateBurst      int
}

// Provider hands out installation-scoped GitHub clients. Installation
// transports are kept per installation ID so their tokens are refreshed
// rather than minted per request.
type Provider struct {
	cfg   AppConfig
	log   *slog.Logger
	apps  *ghinstallation.AppsTransport
	cache *InstallationCache

	mu         sync.Mutex
	transports map[int64]*ghinstallation.Transport
}

var _ repository.GitHubClientProvider = (*Provider)(nil)

// NewProvider succeeds without App credentials; ForOwner then reports
// usecase.ErrCredentialsMissing.
func NewProvider(cfg AppConfig, log *slog.Logger, opts ...CacheOption) (*Provider, error) {
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	p := &Provider{
		cfg:        cfg,
		log:        log.With(slog.String("component", "github")),
		transports: make(map[int64]*ghinstallation.Transport),
	}
	if cfg.AppID == 0 || len(cfg.PrivateKey) == 0 {
		p.log.Warn("github app credentials are not configured")
		return p, nil
	}

	base := NewRateLimitedTransport(http.DefaultTransport, cfg.RateLimit, cfg.RateBurst)
	apps, err := ghinstallation.NewAppsTransport(base, cfg.AppID, cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("github app transport: %w", err)
	}
	apps.BaseURL = cfg.APIURL
	p.apps = apps

	appClient, err := NewRESTClient(&http.Client{Transport: apps}, cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("github app client: %w", err)
	}
	opts = append([]CacheOption{WithTTL(cfg.CacheTTL)}, opts...)
	p.cache = NewInstallationCache(&appDirectory{gh: appClient}, InstallURL(cfg.AppSlug), opts...)
	return p, nil
}

func (p *Provider) ForOwner(ctx context.Context, owner string) (repository.GitHubClient, error) {
	if p.apps == nil {
		return nil, usecase.ErrCredentialsMissing
	}

	installationID := p.cfg.InstallationID
	if installationID == 0 {
		id, err := p.cache.Resolve(ctx, owner)
		if err != nil {
			return nil, err
		}
		installationID = id
	}

	return NewClient(&http.Client{Transport: p.transportFor(installationID)}, p.cfg.APIURL)
}

// Cache exposes the installation cache, nil without credentials.
func (p *Provider) Cache() *InstallationCache {
	return p.cache
}

func (p *Provider) transportFor(installationID int64) *ghinstallation.Transport {
	p.mu.Lock()
	defer p.mu.Unlock()

	if tr, ok := p.transports[installationID]; ok {
		return tr
	}
	tr := ghinstallation.NewFromAppsTransport(p.apps, installationID)
	tr.BaseURL = p.cfg.APIURL
	p.transports[installationID] = tr
	p.log.Debug("github installation transport created", slog.Int64("installation_id", installationID))
	return tr
}

type appDirectory struct {
	gh *gh.Client
}

func (d *appDirectory) ListInstallations(ctx context.Context) ([]Installation, error) {
	const op = "github.ListInstallations"

	opts := &gh.ListOptions{PerPage: perPage}
	var out []Installation
	for {
		page, resp, err := d.gh.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return nil, mapError(op, err)
		}
		for _, inst := range page {
			out = append(out, Installation{ID: inst.GetID(), AccountLogin: inst.GetAccount().GetLogin()})
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}
