package github

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

const DefaultInstallationTTL = 5 * time.Minute

// Installation is one entry of the App installation directory.
type Installation struct {
	ID           int64
	AccountLogin string
}

// InstallationDirectory lists every installation of the App. A 404 from the
// directory is reported as usecase.ErrNotFound.
type InstallationDirectory interface {
	ListInstallations(ctx context.Context) ([]Installation, error)
}

type ClockFunc func() time.Time

type cacheEntry struct {
	installationID int64
	expiresAt      time.Time
}

// InstallationCache maps an owner login to its installation ID for a
// limited time. The map is guarded, the directory lookup is not: concurrent
// misses for the same owner each query the directory and the last write wins.
type InstallationCache struct {
	dir        InstallationDirectory
	installURL string
	ttl        time.Duration
	now        ClockFunc

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type CacheOption func(*InstallationCache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *InstallationCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now ClockFunc) CacheOption {
	return func(c *InstallationCache) {
		if now != nil {
			c.now = now
		}
	}
}

func NewInstallationCache(dir InstallationDirectory, installURL string, opts ...CacheOption) *InstallationCache {
	c := &InstallationCache{
		dir:        dir,
		installURL: installURL,
		ttl:        DefaultInstallationTTL,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstallURL builds the page where an owner installs the App.
func InstallURL(appSlug string) string {
	if appSlug == "" {
		return "https://github.com/settings/installations"
	}
	return "https://github.com/apps/" + appSlug + "/installations/new"
}

func (c *InstallationCache) Resolve(ctx context.Context, owner string) (int64, error) {
	key := strings.ToLower(owner)

	if id, ok := c.lookup(key); ok {
		return id, nil
	}

	installations, err := c.dir.ListInstallations(ctx)
	if err != nil {
		if isNotFound(err) {
			return 0, c.notInstalled(owner)
		}
		return 0, fmt.Errorf("list installations: %w", err)
	}

	for _, inst := range installations {
		if strings.ToLower(inst.AccountLogin) != key {
			continue
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{installationID: inst.ID, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return inst.ID, nil
	}

	return 0, c.notInstalled(owner)
}

// ExpiresAt reports when the cached entry for owner goes stale.
func (c *InstallationCache) ExpiresAt(owner string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[strings.ToLower(owner)]
	return e.expiresAt, ok
}

func (c *InstallationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *InstallationCache) lookup(key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return 0, false
	}
	return e.installationID, true
}

func (c *InstallationCache) notInstalled(owner string) error {
	return &usecase.NotInstalledError{Owner: owner, InstallURL: c.installURL}
}
