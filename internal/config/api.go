package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/lector/pkg/formatting"
	"github.com/JaimeStill/lector/pkg/middleware"
)

const (
	EnvLectorAPIBasePath      = "LECTOR_API_BASE_PATH"
	EnvLectorAPIMaxUploadSize = "LECTOR_API_MAX_UPLOAD_SIZE"
	EnvLectorAPICORSOrigins   = "LECTOR_API_CORS_ORIGINS"
)

// APIConfig holds API module settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
}

// MaxUploadSizeBytes returns MaxUploadSize parsed as a byte count.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxUploadSize)
	return n
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.CORS.Merge(&overlay.CORS)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}

	if v := os.Getenv(EnvLectorAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvLectorAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvLectorAPICORSOrigins); v != "" {
		c.CORS.Origins = splitTrimmed(v)
	}

	c.CORS.Finalize()

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	return nil
}

func splitTrimmed(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
