package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/online-lms/api"
	"github.com/sahilchouksey/online-lms/config"
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/router"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/services/cron"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/utils/auth"
	"github.com/sahilchouksey/online-lms/utils/cache"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"github.com/sahilchouksey/online-lms/utils/middleware"
)

const shutdownTimeout = 15 * time.Second

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg, err := config.Get()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	// Initialize GORM database connection
	store, err := database.StartGORM(cfg, log)
	if err != nil {
		log.Error("database unreachable, check that it is running", "driver", cfg.Database.Driver, "error", err)
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Error("failed to migrate database tables", "error", err)
		return err
	}

	files, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Expiry:   cfg.JWT.Expiry,
	})

	// Redis backs revocation and brute force protection; both degrade without it
	var revoker auth.Revoker
	var bruteForce *middleware.BruteForceProtection
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		log.Warn("redis unavailable, using in-memory token revocation and disabling brute force protection", "error", err)
		revoker = auth.NewMemoryRevoker()
	} else {
		defer redisCache.Close()
		revoker = auth.NewRedisRevoker(redisCache)
		bruteForce = middleware.NewBruteForceProtection(redisCache, log)
	}

	// Initialize Cron Manager (only if enabled)
	if cfg.CronEnabled {
		cronManager := cron.NewCronManager(store, log)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("failed to start cron jobs", "error", err)
		} else {
			defer cronManager.Stop()
		}
	}

	server := api.NewAPIServer(fmt.Sprintf(":%d", cfg.Port), cfg.BodyLimit(), log)

	deps := router.Dependencies{
		Store:      store,
		Services:   services.New(store, files, log),
		JWTManager: jwtManager,
		Revoker:    revoker,
		BruteForce: bruteForce,
		Security: middleware.SecurityConfig{
			AllowedOrigin:     cfg.HTTP.AllowedOrigin,
			RateLimitRequests: cfg.HTTP.RateLimitRequests,
			RateLimitWindow:   cfg.HTTP.RateLimitWindow,
			AccessLog:         !cfg.IsProduction(),
		},
		Log: log,
	}
	if local, ok := files.(*storage.LocalStore); ok {
		deps.StaticDir = local.Dir()
	}

	router.SetupRoutes(server.GetEngine(), deps)

	return serve(server, log)
}

// serve runs the server until it fails or SIGINT/SIGTERM arrives
func serve(server *api.APIServer, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
