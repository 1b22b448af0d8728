package providers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/lector/internal/config"
	"github.com/JaimeStill/lector/internal/credentials"
	"github.com/JaimeStill/lector/internal/providers"
	"github.com/JaimeStill/lector/pkg/lifecycle"
)

type emptyCredentials struct{}

func (emptyCredentials) Start(lc *lifecycle.Coordinator) error { return nil }
func (emptyCredentials) IsConfigured(provider string) bool     { return false }
func (emptyCredentials) Get(provider string) (string, error) {
	return "", credentials.ErrNotConfigured
}
func (emptyCredentials) Set(ctx context.Context, provider, credential string) error { return nil }
func (emptyCredentials) Invalidate(ctx context.Context, provider string) error      { return nil }
func (emptyCredentials) Configured(known []string) []string                         { return nil }

func testConfig() *config.ProvidersConfig {
	return &config.ProvidersConfig{
		DefaultModel:   "gemini/gemini-2.5-flash",
		OCRModel:       "gemini-2.5-flash",
		RequestTimeout: "1m",
	}
}

func TestParseModelID(t *testing.T) {
	t.Run("valid identifier", func(t *testing.T) {
		provider, model, err := providers.ParseModelID("gemini/gemini-2.5-flash")
		if err != nil {
			t.Fatalf("ParseModelID error: %v", err)
		}
		if provider != "gemini" || model != "gemini-2.5-flash" {
			t.Errorf("ParseModelID = %q, %q", provider, model)
		}
	})

	t.Run("model name may contain slashes", func(t *testing.T) {
		provider, model, err := providers.ParseModelID("openai/org/custom-model")
		if err != nil {
			t.Fatalf("ParseModelID error: %v", err)
		}
		if provider != "openai" || model != "org/custom-model" {
			t.Errorf("ParseModelID = %q, %q", provider, model)
		}
	})

	malformed := []struct {
		name    string
		modelID string
	}{
		{"missing separator", "gemini-2.5-flash"},
		{"empty provider", "/gemini-2.5-flash"},
		{"empty model", "gemini/"},
		{"empty identifier", ""},
	}

	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := providers.ParseModelID(tt.modelID)
			if !errors.Is(err, providers.ErrUnsupportedProvider) {
				t.Errorf("err = %v, want ErrUnsupportedProvider", err)
			}
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, _, err := providers.ParseModelID("anthropic/claude-sonnet")
		if !errors.Is(err, providers.ErrUnsupportedProvider) {
			t.Errorf("err = %v, want ErrUnsupportedProvider", err)
		}
	})
}

func TestGatewayComplete(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("malformed model identifier", func(t *testing.T) {
		gateway := providers.New(testConfig(), emptyCredentials{}, logger)

		_, err := gateway.Complete(context.Background(), "no-separator", "prompt")
		if !errors.Is(err, providers.ErrUnsupportedProvider) {
			t.Errorf("err = %v, want ErrUnsupportedProvider", err)
		}
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		gateway := providers.New(testConfig(), emptyCredentials{}, logger)

		_, err := gateway.Complete(context.Background(), "gemini/gemini-2.5-flash", "prompt")
		if !errors.Is(err, providers.ErrProviderNotConfigured) {
			t.Errorf("err = %v, want ErrProviderNotConfigured", err)
		}
	})
}

func TestGatewayConfigure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("unknown provider", func(t *testing.T) {
		gateway := providers.New(testConfig(), emptyCredentials{}, logger)

		err := gateway.Configure(context.Background(), "anthropic", "key")
		if !errors.Is(err, providers.ErrUnsupportedProvider) {
			t.Errorf("err = %v, want ErrUnsupportedProvider", err)
		}
	})
}

func TestGatewayProviders(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := providers.New(testConfig(), emptyCredentials{}, logger)

	want := []string{"gemini", "openai"}
	got := gateway.Providers()

	if len(got) != len(want) {
		t.Fatalf("Providers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Providers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
