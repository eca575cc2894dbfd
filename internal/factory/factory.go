// Package factory wires the portal's services together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/lcabral/guestportal/internal/dependencies/clock"
	"github.com/lcabral/guestportal/internal/services/flow"
	"github.com/lcabral/guestportal/internal/services/guestbook"
	"github.com/lcabral/guestportal/internal/services/identity"
	"github.com/lcabral/guestportal/internal/sheets"
	"github.com/lcabral/guestportal/internal/storage"
	"github.com/lcabral/guestportal/internal/storage/memory"
	redisstorage "github.com/lcabral/guestportal/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	FlowService      *flow.Service
	GuestbookService *guestbook.Service
	IdentityService  *identity.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// FlowConfig holds flow lifetime settings (optional)
	FlowConfig flow.Config
	// GuestbookConfig holds the append retry policy (optional)
	GuestbookConfig guestbook.Config
	// SheetsConfig holds the spreadsheet client settings
	SheetsConfig sheets.Config
	// IdentityConfig holds the OAuth provider settings
	IdentityConfig identity.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	appender, err := sheets.New(cfg.SheetsConfig, clk, logger)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clk, appender, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, appender guestbook.Appender, cfg Config, logger *slog.Logger) *App {
	flowService := flow.New(store, clk, cfg.FlowConfig, logger)
	guestbookService := guestbook.New(appender, clk, cfg.GuestbookConfig, logger)
	identityService := identity.New(cfg.IdentityConfig, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		FlowService:      flowService,
		GuestbookService: guestbookService,
		IdentityService:  identityService,
	}
}
