package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/app"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/configs"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/auth"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/github"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/kv"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/memory"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/storage/pg"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/transport/rest/apidoc"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/transport/rest/handlers"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		slog.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg *configs.Config, log *slog.Logger) error {
	ctx := context.Background()

	// Storage
	var (
		blobs     repository.BlobStore
		txManager repository.TxManager
	)
	if cfg.DatabaseURL != "" {
		db, err := pg.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close db", logger.Err(err))
			}
		}()

		if err := pg.Migrate(db.DB); err != nil {
			return err
		}
		blobs = pg.NewBlobStorage(db)
		txManager = pg.NewTxManager(db, log)
		log.Info("using postgres storage", slog.String("driver", cfg.DBDriver))
	} else {
		blobs = memory.NewBlobStorage()
		txManager = memory.NewTxManager()
		log.Warn("DATABASE_URL is not set, configuration and roles are kept in memory")
	}

	// GitHub
	provider, err := github.NewProvider(github.AppConfig{
		AppID:          cfg.GitHub.AppID,
		PrivateKey:     []byte(cfg.GitHub.PrivateKey),
		InstallationID: cfg.GitHub.InstallationID,
		AppSlug:        cfg.GitHub.AppSlug,
		APIURL:         cfg.GitHub.APIURL,
		CacheTTL:       cfg.GitHub.CacheTTL,
		RateLimit:      cfg.GitHub.RateLimit,
		RateBurst:      cfg.GitHub.RateBurst,
	}, log)
	if err != nil {
		return err
	}

	// Sessions
	var oauth repository.OAuthProvider
	if cfg.OAuth.ClientID != "" {
		oauth = auth.NewGitHubOAuth(auth.OAuthConfig{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectURL,
			APIURL:       cfg.GitHub.APIURL,
		})
	} else {
		log.Warn("GITHUB_CLIENT_ID is not set, login is disabled")
	}
	if cfg.EphemeralJWTSecret {
		log.Warn("JWT_SECRET is not set, sessions will not survive a restart")
	}
	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL, time.Now)
	if err != nil {
		return err
	}

	// Service
	svc := app.NewService(app.Deps{
		GitHub:    provider,
		Configs:   kv.NewConfigStorage(blobs),
		Roles:     kv.NewRoleStorage(blobs),
		TxManager: txManager,
		OAuth:     oauth,
		Tokens:    tokens,
		Legacy: app.LegacyDefaults{
			Repositories: cfg.Legacy.ParseRepositories(),
			AllowedUsers: cfg.Legacy.ParseAllowedUsers(),
			UserRoles:    cfg.Legacy.ParseUserRoles(),
		},
		FanoutLimit: cfg.GitHub.FanoutLimit,
		Log:         log,
	})

	// HTTP
	doc, err := apidoc.Load(ctx)
	if err != nil {
		return err
	}
	h := handlers.NewHandlers(svc, doc, log)
	router := handlers.NewRouter(h, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server exited")
	return nil
}
