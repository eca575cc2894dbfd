package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcabral/guestportal/internal/config"
	"github.com/lcabral/guestportal/internal/factory"
	"github.com/lcabral/guestportal/internal/services/flow"
	"github.com/lcabral/guestportal/internal/services/identity"
	"github.com/lcabral/guestportal/internal/sheets"
	redisstorage "github.com/lcabral/guestportal/internal/storage/redis"
	"github.com/lcabral/guestportal/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	flowConfig := flow.DefaultConfig()

	// Build factory config from environment
	factoryConfig := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		FlowConfig:  flowConfig,
		SheetsConfig: sheets.Config{
			CredentialsFile: cfg.SheetsCredentialsFile,
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			Range:           cfg.SheetsRange,
		},
		IdentityConfig: identity.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisConfig := redisstorage.DefaultConfig()
		redisConfig.URL = cfg.RedisURL
		redisConfig.FlowTTL = flowConfig.FlowDuration
		factoryConfig.RedisConfig = &redisConfig
	}

	// Create application factory
	app, err := factory.New(factoryConfig)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create portal router
	router, err := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		FlowService:      app.FlowService,
		IdentityService:  app.IdentityService,
		GuestbookService: app.GuestbookService,
		SessionSecret:    cfg.SessionSecret,
		ControllerIP:     cfg.ControllerIP,
		FlowTTL:          flowConfig.FlowDuration,
		StaticDir:        findStaticDir(cfg.StaticDir),
	})
	if err != nil {
		logger.Error("failed to create router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create server
	serverConfig := web.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("portal started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("portal stopped")
}

// findStaticDir returns the static files directory, or empty if it is absent
func findStaticDir(dir string) string {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}
