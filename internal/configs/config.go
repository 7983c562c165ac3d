package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

const EnvProd = "prod"

type Config struct {
	Env         string `env:"APP_ENV" env-default:"local"`
	Port        string `env:"PORT" env-default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBDriver    string `env:"DB_DRIVER" env-default:"postgres"`

	GitHub GitHubConfig
	OAuth  OAuthConfig

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"168h"`

	Legacy LegacyConfig

	// EphemeralJWTSecret is set when no JWT_SECRET was given outside prod
	// and a random one was generated.
	EphemeralJWTSecret bool
}

type GitHubConfig struct {
	AppID          int64         `env:"GITHUB_APP_ID"`
	PrivateKey     string        `env:"GITHUB_APP_PRIVATE_KEY"`
	InstallationID int64         `env:"GITHUB_INSTALLATION_ID"`
	AppSlug        string        `env:"GITHUB_APP_SLUG"`
	APIURL         string        `env:"GITHUB_API_URL" env-default:"https://api.github.com"`
	CacheTTL       time.Duration `env:"INSTALLATION_CACHE_TTL" env-default:"5m"`
	FanoutLimit    int           `env:"GITHUB_FANOUT_LIMIT" env-default:"8"`
	RateLimit      float64       `env:"GITHUB_RATE_LIMIT" env-default:"10"`
	RateBurst      int           `env:"GITHUB_RATE_BURST" env-default:"20"`
}

type OAuthConfig struct {
	ClientID     string `env:"GITHUB_CLIENT_ID"`
	ClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	RedirectURL  string `env:"GITHUB_OAUTH_REDIRECT_URL"`
}

// LegacyConfig holds the variables that seeded the dashboard before
// configuration and roles moved to storage.
type LegacyConfig struct {
	Repositories string `env:"GITHUB_REPOSITORIES"`
	AllowedUsers string `env:"ALLOWED_USERS"`
	UserRoles    string `env:"USER_ROLES"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.GitHub.PrivateKey = normalizePrivateKey(cfg.GitHub.PrivateKey)

	if cfg.JWTSecret == "" {
		if cfg.Env == EnvProd {
			return nil, errors.New("JWT_SECRET is required in prod")
		}
		cfg.JWTSecret = uuid.NewString()
		cfg.EphemeralJWTSecret = true
	}
	return &cfg, nil
}

// PEM keys pasted into a single env line keep their newlines escaped.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), `\n`, "\n")
}

// ParseRepositories parses "owner/name,owner/name" into enabled repositories.
// Malformed entries are skipped.
func (l LegacyConfig) ParseRepositories() []entity.Repository {
	out := []entity.Repository{}
	for _, item := range splitList(l.Repositories) {
		owner, name, ok := strings.Cut(item, "/")
		owner, name = strings.TrimSpace(owner), strings.TrimSpace(name)
		if !ok || owner == "" || name == "" {
			continue
		}
		out = append(out, entity.Repository{Owner: owner, Name: name, Enabled: true})
	}
	return out
}

func (l LegacyConfig) ParseAllowedUsers() []string {
	return splitList(l.AllowedUsers)
}

// ParseUserRoles parses "alice:superadmin,bob:admin". Entries with an
// unknown role are skipped.
func (l LegacyConfig) ParseUserRoles() map[string]entity.Role {
	out := make(map[string]entity.Role)
	for _, item := range splitList(l.UserRoles) {
		user, rawRole, ok := strings.Cut(item, ":")
		user = strings.TrimSpace(user)
		if !ok || user == "" {
			continue
		}
		role, valid := entity.ParseRole(rawRole)
		if !valid {
			continue
		}
		out[user] = role
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
