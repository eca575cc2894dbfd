// Package config loads portal configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all portal settings. Identity provider, controller, session
// and spreadsheet settings are required at startup.
type Config struct {
	// HTTP server
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"3000"`

	// Identity provider
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required,notEmpty"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required,notEmpty"`
	OAuthRedirectURL   string `env:"OAUTH_REDIRECT_URL,required,notEmpty"`

	// Network controller
	ControllerIP string `env:"OMADA_CONTROLLER_IP,required,notEmpty"`

	// Session
	SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`

	// Guestbook spreadsheet
	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE,required,notEmpty"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID,required,notEmpty"`
	SheetsRange           string `env:"SHEETS_RANGE" envDefault:"Sheet1!A:I"`

	// Flow storage
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// Static assets
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.StorageType == "redis" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL required when STORAGE_TYPE=redis")
	}

	return &cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
