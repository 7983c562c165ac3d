package app

import (
	"log/slog"
	"time"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

// compile-time proof
var _ usecase.Service = (*ServiceImpl)(nil)

// LegacyDefaults seeds storage from environment variables used before
// configuration and roles were persisted.
type LegacyDefaults struct {
	Repositories []entity.Repository
	AllowedUsers []string
	UserRoles    map[string]entity.Role
}

type Deps struct {
	GitHub    repository.GitHubClientProvider
	Configs   repository.ConfigRepository
	Roles     repository.RoleRepository
	TxManager repository.TxManager
	OAuth     repository.OAuthProvider
	Tokens    repository.TokenIssuer

	Legacy LegacyDefaults
	// FanoutLimit bounds concurrent GitHub calls per fan-out group; <= 0 is
	// unlimited.
	FanoutLimit int
	Now         func() time.Time
	Log         *slog.Logger
}

type ServiceImpl struct {
	github    repository.GitHubClientProvider
	configs   repository.ConfigRepository
	roles     repository.RoleRepository
	txManager repository.TxManager
	oauth     repository.OAuthProvider
	tokens    repository.TokenIssuer

	legacy      LegacyDefaults
	fanoutLimit int
	now         func() time.Time
	log         *slog.Logger
}

func NewService(d Deps) *ServiceImpl {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	return &ServiceImpl{
		github:      d.GitHub,
		configs:     d.Configs,
		roles:       d.Roles,
		txManager:   d.TxManager,
		oauth:       d.OAuth,
		tokens:      d.Tokens,
		legacy:      d.Legacy,
		fanoutLimit: d.FanoutLimit,
		now:         d.Now,
		log:         d.Log.With(slog.String("component", "service")),
	}
}
