package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	SessionSecret string `env:"FOLIO_SESSION_SECRET"`
	ServerHost    string `env:"FOLIO_SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort    int    `env:"FOLIO_SERVER_PORT" envDefault:"10000"`
	Env           string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SessionSecretLength is the length of a generated session secret in bytes.
const SessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
//
// FOLIO_SESSION_SECRET is optional: when unset a random secret is
// generated for this process, which means sessions and CSRF tokens do
// not survive a restart.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		cfg.SessionSecret = secret
		slog.Warn("FOLIO_SESSION_SECRET not set; using a random per-start secret, " +
			"sessions will not survive restarts")
	}

	if len(cfg.SessionSecret) < SessionSecretLength {
		return nil, fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d; "+
			"generate one with: openssl rand -base64 32",
			SessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}

// randomSecret returns a base64-encoded 32-byte random secret.
func randomSecret() (string, error) {
	buf := make([]byte, SessionSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
