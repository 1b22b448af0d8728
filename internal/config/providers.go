package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	EnvLectorDefaultModel   = "LECTOR_DEFAULT_MODEL"
	EnvLectorOCRModel       = "LECTOR_OCR_MODEL"
	EnvLectorOpenAIBaseURL  = "LECTOR_OPENAI_BASE_URL"
	EnvLectorRequestTimeout = "LECTOR_REQUEST_TIMEOUT"
)

// ProvidersConfig holds completion provider gateway settings.
type ProvidersConfig struct {
	// DefaultModel is the provider-qualified model assigned to agents
	// created without an explicit model selection.
	DefaultModel string `toml:"default_model"`

	// OCRModel is the model used by the designated vision backend for
	// page OCR, independent of any agent's model selection.
	OCRModel string `toml:"ocr_model"`

	// OpenAIBaseURL targets the OpenAI-compatible chat completions API;
	// point it at a compatible proxy to swap backends.
	OpenAIBaseURL string `toml:"openai_base_url"`

	// RequestTimeout bounds a single provider round trip.
	RequestTimeout string `toml:"request_timeout"`
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *ProvidersConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Merge overwrites non-zero fields from overlay.
func (c *ProvidersConfig) Merge(overlay *ProvidersConfig) {
	if overlay.DefaultModel != "" {
		c.DefaultModel = overlay.DefaultModel
	}
	if overlay.OCRModel != "" {
		c.OCRModel = overlay.OCRModel
	}
	if overlay.OpenAIBaseURL != "" {
		c.OpenAIBaseURL = overlay.OpenAIBaseURL
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ProvidersConfig) Finalize() error {
	if c.DefaultModel == "" {
		c.DefaultModel = "gemini/gemini-2.5-flash"
	}
	if c.OCRModel == "" {
		c.OCRModel = "gemini-2.5-flash"
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "2m"
	}

	if v := os.Getenv(EnvLectorDefaultModel); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv(EnvLectorOCRModel); v != "" {
		c.OCRModel = v
	}
	if v := os.Getenv(EnvLectorOpenAIBaseURL); v != "" {
		c.OpenAIBaseURL = v
	}
	if v := os.Getenv(EnvLectorRequestTimeout); v != "" {
		c.RequestTimeout = v
	}

	if !strings.Contains(c.DefaultModel, "/") {
		return fmt.Errorf("default_model must be provider-qualified: %s", c.DefaultModel)
	}
	if c.RequestTimeoutDuration() <= 0 {
		return fmt.Errorf("invalid request_timeout: %s", c.RequestTimeout)
	}
	return nil
}
