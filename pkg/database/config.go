package database

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds SQLite connection parameters for the local settings store.
type Config struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	BusyTimeout  string `toml:"busy_timeout"`
	ConnTimeout  string `toml:"conn_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Path         string
	MaxOpenConns string
	BusyTimeout  string
	ConnTimeout  string
}

// BusyTimeoutDuration returns BusyTimeout as a time.Duration.
func (c *Config) BusyTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.BusyTimeout)
	return d
}

// ConnTimeoutDuration returns ConnTimeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// Dsn returns a modernc sqlite connection string with the busy timeout
// applied as a pragma.
func (c *Config) Dsn() string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		c.Path, c.BusyTimeoutDuration().Milliseconds(),
	)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.MaxOpenConns != 0 {
		c.MaxOpenConns = overlay.MaxOpenConns
	}
	if overlay.BusyTimeout != "" {
		c.BusyTimeout = overlay.BusyTimeout
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Path == "" {
		c.Path = "lector.db"
	}
	if c.MaxOpenConns == 0 {
		// modernc sqlite serializes writers; a single connection avoids
		// SQLITE_BUSY churn under the write patterns this store sees.
		c.MaxOpenConns = 1
	}
	if c.BusyTimeout == "" {
		c.BusyTimeout = "5s"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
	if env.MaxOpenConns != "" {
		if v := os.Getenv(env.MaxOpenConns); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxOpenConns = n
			}
		}
	}
	if env.BusyTimeout != "" {
		if v := os.Getenv(env.BusyTimeout); v != "" {
			c.BusyTimeout = v
		}
	}
	if env.ConnTimeout != "" {
		if v := os.Getenv(env.ConnTimeout); v != "" {
			c.ConnTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.BusyTimeoutDuration() <= 0 {
		return fmt.Errorf("invalid busy_timeout: %s", c.BusyTimeout)
	}
	if c.ConnTimeoutDuration() <= 0 {
		return fmt.Errorf("invalid conn_timeout: %s", c.ConnTimeout)
	}
	return nil
}
