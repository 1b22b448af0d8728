// Package credentials manages provider API keys for the completion gateway.
// Keys come from environment defaults or user-supplied values persisted in
// the local settings store; user values win.
package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/lector/pkg/lifecycle"
	"github.com/JaimeStill/lector/pkg/repository"
)

// System defines the credential operations the gateway and orchestrator
// depend on.
type System interface {
	// Start loads persisted credentials via the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// IsConfigured reports whether a credential is available for the provider.
	IsConfigured(provider string) bool
	// Get returns the credential for the provider.
	// Returns ErrNotConfigured if none is available.
	Get(provider string) (string, error)
	// Set persists a user-supplied credential, replacing any prior value
	// and clearing any invalidation.
	Set(ctx context.Context, provider, credential string) error
	// Invalidate removes the stored credential and suppresses the
	// environment default until Set is called again, so the user is
	// re-prompted rather than silently retrying a rejected key.
	Invalidate(ctx context.Context, provider string) error
	// Configured returns the providers that currently have a credential.
	Configured(known []string) []string
}

type store struct {
	db     *sql.DB
	env    func(provider string) string
	logger *slog.Logger

	mu          sync.RWMutex
	persisted   map[string]string
	invalidated map[string]bool
}

// New creates a credential store over the settings database. The env
// function resolves a provider's environment default ("" when unset).
func New(db *sql.DB, env func(provider string) string, logger *slog.Logger) System {
	if env == nil {
		env = func(string) string { return "" }
	}
	return &store{
		db:          db,
		env:         env,
		logger:      logger.With("system", "credentials"),
		persisted:   make(map[string]string),
		invalidated: make(map[string]bool),
	}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting credential store")

	lc.OnStartup(func() {
		if err := s.load(lc.Context()); err != nil {
			s.logger.Error("credential load failed", "error", err)
			return
		}
		s.logger.Info("credentials loaded", "providers", len(s.persisted))
	})

	return nil
}

func (s *store) IsConfigured(provider string) bool {
	_, err := s.Get(provider)
	return err == nil
}

func (s *store) Get(provider string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if credential, ok := s.persisted[provider]; ok {
		return credential, nil
	}

	if !s.invalidated[provider] {
		if credential := s.env(provider); credential != "" {
			return credential, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotConfigured, provider)
}

func (s *store) Set(ctx context.Context, provider, credential string) error {
	if provider == "" || credential == "" {
		return ErrInvalidCredentialValue
	}

	const query = `
		INSERT INTO credentials (provider, api_key, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (provider) DO UPDATE
		SET api_key = excluded.api_key, updated_at = excluded.updated_at`

	if err := repository.ExecExpectOne(ctx, s.db, query, provider, credential); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.persisted[provider] = credential
	delete(s.invalidated, provider)
	s.mu.Unlock()

	s.logger.Info("credential stored", "provider", provider)
	return nil
}

func (s *store) Invalidate(ctx context.Context, provider string) error {
	if _, err := s.db.ExecContext(
		ctx, `DELETE FROM credentials WHERE provider = ?`, provider,
	); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}

	s.mu.Lock()
	delete(s.persisted, provider)
	s.invalidated[provider] = true
	s.mu.Unlock()

	s.logger.Warn("credential invalidated", "provider", provider)
	return nil
}

func (s *store) Configured(known []string) []string {
	configured := make([]string, 0, len(known))
	for _, provider := range known {
		if s.IsConfigured(provider) {
			configured = append(configured, provider)
		}
	}
	return configured
}

func (s *store) load(ctx context.Context) error {
	type row struct {
		provider string
		apiKey   string
	}

	rows, err := repository.QueryMany(
		ctx, s.db,
		`SELECT provider, api_key FROM credentials`,
		nil,
		func(scan repository.Scanner) (row, error) {
			var r row
			err := scan.Scan(&r.provider, &r.apiKey)
			return r, err
		},
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.persisted[r.provider] = r.apiKey
	}
	return nil
}
