// Package config loads and finalizes the Lector service configuration from
// TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/lector/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvLectorEnv             = "LECTOR_ENV"
	EnvLectorShutdownTimeout = "LECTOR_SHUTDOWN_TIMEOUT"
	EnvLectorVersion         = "LECTOR_VERSION"
)

var databaseEnv = &database.Env{
	Path:         "LECTOR_DB_PATH",
	MaxOpenConns: "LECTOR_DB_MAX_OPEN_CONNS",
	BusyTimeout:  "LECTOR_DB_BUSY_TIMEOUT",
	ConnTimeout:  "LECTOR_DB_CONN_TIMEOUT",
}

// Config is the root configuration for the Lector service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	API             APIConfig       `toml:"api"`
	Providers       ProvidersConfig `toml:"providers"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the LECTOR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvLectorEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func overlayPath() string {
	env := os.Getenv(EnvLectorEnv)
	if env == "" {
		return ""
	}

	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}

func (c *Config) merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Providers.Merge(&overlay.Providers)

	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
}

func (c *Config) finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}
	if err := c.Providers.Finalize(); err != nil {
		return fmt.Errorf("providers config: %w", err)
	}

	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if v := os.Getenv(EnvLectorShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %s", c.ShutdownTimeout)
	}

	if c.Version == "" {
		c.Version = "dev"
	}
	if v := os.Getenv(EnvLectorVersion); v != "" {
		c.Version = v
	}

	return nil
}
