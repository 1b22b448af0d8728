// Package infrastructure provides core service initialization for application
// startup. It assembles the shared dependencies (logging, settings database,
// credentials, completion gateway) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/lector/internal/config"
	"github.com/JaimeStill/lector/internal/credentials"
	"github.com/JaimeStill/lector/internal/providers"
	"github.com/JaimeStill/lector/pkg/database"
	"github.com/JaimeStill/lector/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, the settings database, credentials, and the completion gateway.
type Infrastructure struct {
	Lifecycle   *lifecycle.Coordinator
	Logger      *slog.Logger
	Database    database.System
	Credentials credentials.System
	Gateway     *providers.Gateway
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	creds := credentials.New(db.Connection(), credentials.EnvDefault, logger)
	gateway := providers.New(&cfg.Providers, creds, logger)

	return &Infrastructure{
		Lifecycle:   lc,
		Logger:      logger,
		Database:    db,
		Credentials: creds,
		Gateway:     gateway,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Credentials.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("credentials start failed: %w", err)
	}
	return nil
}
