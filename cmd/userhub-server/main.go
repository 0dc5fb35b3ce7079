// Package main provides the entry point for userhub-server.
//
// userhub-server is the UserHub API process: an in-memory user
// directory with cookie sessions and conditional caching over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yndnr/userhub-go/internal/core/domain"
	"github.com/yndnr/userhub-go/internal/core/service"
	"github.com/yndnr/userhub-go/internal/infra/buildinfo"
	"github.com/yndnr/userhub-go/internal/infra/confloader"
	"github.com/yndnr/userhub-go/internal/infra/shutdown"
	"github.com/yndnr/userhub-go/internal/server/config"
	"github.com/yndnr/userhub-go/internal/server/httpserver"
	"github.com/yndnr/userhub-go/internal/storage/memory"
	"github.com/yndnr/userhub-go/internal/telemetry/logger"
	"github.com/yndnr/userhub-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("userhub-server %s\n", buildinfo.String())
		return nil
	}

	// A .env file is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	logger.SetDefault(log)

	log.Info("starting userhub-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userStore := memory.NewUserStore()
	if err := userStore.Seed(ctx, seedUsers()); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	sessionStore := memory.NewSessionStore()

	userSvc := service.NewUserService(userStore)
	sessionSvc := service.NewSessionService(sessionStore, cfg.Session.TTL)
	authSvc, err := service.NewAuthService(service.AuthConfig{
		Username: cfg.Auth.AdminUsername,
		Password: cfg.Auth.AdminPassword,
		APIToken: cfg.Auth.APIToken,
	})
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	metrics := metric.NewRegistry()
	metrics.MustRegister(metric.NewStoreCollector(userStore.Count, sessionStore.Count))

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		UserService:        userSvc,
		SessionService:     sessionSvc,
		AuthService:        authSvc,
		Logger:             log,
		Metrics:            metrics,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimit:          cfg.Server.RateLimit,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go sessionSvc.RunSweeper(ctx, cfg.Session.SweepInterval, log)

	// Log-level hot reload when a config file is in play.
	if *configFile != "" {
		watcher, err := confloader.NewWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else {
			watcher.OnChange(func(path string) {
				reloaded := config.Default()
				if err := confloader.NewLoader(confloader.WithConfigFile(path)).Load(reloaded); err != nil {
					log.Warn("config reload failed", "error", err)
					return
				}
				if reloaded.Log.Level != logger.Level() {
					logger.SetLevel(reloaded.Log.Level)
					log.Info("log level changed", "level", reloaded.Log.Level)
				}
			})
			go watcher.Start()
			defer watcher.Stop()
		}
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return srv.Shutdown(ctx)
	})
	shutdownHandler.OnShutdown(func(context.Context) error {
		cancel()
		return nil
	})

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig layers defaults, file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// seedUsers is the initial directory content.
func seedUsers() []*domain.User {
	return []*domain.User{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	}
}
