// Package providers implements the completion provider gateway: a uniform
// interface over heterogeneous LLM backends keyed by provider-qualified
// model identifiers.
package providers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/JaimeStill/lector/internal/config"
	"github.com/JaimeStill/lector/internal/credentials"
)

// ocrProvider is the designated vision-capable backend for page OCR,
// independent of any agent's model selection.
const ocrProvider = "gemini"

// Client is a configured backend for a single provider. Each call is one
// blocking request/response round trip; no caching, retries, or streaming.
type Client interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// visionClient is implemented by backends that can OCR a page image.
type visionClient interface {
	OCR(ctx context.Context, model string, image []byte) (string, error)
}

type factory func(ctx context.Context, credential string, cfg *config.ProvidersConfig) (Client, error)

var factories = map[string]factory{
	"gemini": newGeminiClient,
	"openai": newOpenAIClient,
}

// Gateway resolves model identifiers to configured backend clients and
// invokes them. Clients are built lazily from the credential store and
// held until Configure or Reset replaces them, so re-initialization after
// credential changes is an explicit transition.
type Gateway struct {
	cfg    *config.ProvidersConfig
	creds  credentials.System
	logger *slog.Logger

	mu      sync.Mutex
	clients map[string]Client
}

// New creates a Gateway over the given credential store.
func New(cfg *config.ProvidersConfig, creds credentials.System, logger *slog.Logger) *Gateway {
	return &Gateway{
		cfg:     cfg,
		creds:   creds,
		logger:  logger.With("system", "providers"),
		clients: make(map[string]Client),
	}
}

// Complete dispatches a prompt to the backend selected by the
// provider-qualified model identifier and returns the raw response text.
func (g *Gateway) Complete(ctx context.Context, modelID, prompt string) (string, error) {
	provider, model, err := ParseModelID(modelID)
	if err != nil {
		return "", err
	}

	client, err := g.client(ctx, provider)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeoutDuration())
	defer cancel()

	output, err := client.Complete(ctx, model, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", provider, err)
	}

	g.logger.Debug("completion finished", "model", modelID, "output_len", len(output))
	return output, nil
}

// PerformOCR extracts text from a page image using the designated vision
// backend, regardless of the models selected for text agents.
func (g *Gateway) PerformOCR(ctx context.Context, image []byte) (string, error) {
	client, err := g.client(ctx, ocrProvider)
	if err != nil {
		return "", err
	}

	vision, ok := client.(visionClient)
	if !ok {
		return "", fmt.Errorf("%w: %s: no vision capability", ErrProviderRequest, ocrProvider)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeoutDuration())
	defer cancel()

	text, err := vision.OCR(ctx, g.cfg.OCRModel, image)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ocrProvider, err)
	}

	return text, nil
}

// Configure builds and installs a client for the provider from the given
// credential, replacing any live client.
func (g *Gateway) Configure(ctx context.Context, provider, credential string) error {
	if _, ok := factories[provider]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}

	client, err := factories[provider](ctx, credential, g.cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", provider, err)
	}

	g.mu.Lock()
	g.clients[provider] = client
	g.mu.Unlock()

	g.logger.Info("provider configured", "provider", provider)
	return nil
}

// Reset drops the provider's live client so the next call rebuilds it from
// the credential store.
func (g *Gateway) Reset(provider string) {
	g.mu.Lock()
	delete(g.clients, provider)
	g.mu.Unlock()
}

// Providers returns the known provider names in stable order.
func (g *Gateway) Providers() []string {
	names := Known()
	sort.Strings(names)
	return names
}

func (g *Gateway) client(ctx context.Context, provider string) (Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if client, ok := g.clients[provider]; ok {
		return client, nil
	}

	credential, err := g.creds.Get(provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotConfigured, provider)
	}

	client, err := factories[provider](ctx, credential, g.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", provider, err)
	}

	g.clients[provider] = client
	return client, nil
}
