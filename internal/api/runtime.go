package api

import (
	"github.com/JaimeStill/lector/internal/config"
	"github.com/JaimeStill/lector/internal/infrastructure"
	"github.com/JaimeStill/lector/internal/workflow"
)

// Runtime extends Infrastructure with API-specific configuration and the
// workflow runtime handed to each run.
type Runtime struct {
	*infrastructure.Infrastructure
	Workflow      *workflow.Runtime
	DefaultModel  string
	MaxUploadSize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:   infra.Lifecycle,
			Logger:      logger,
			Database:    infra.Database,
			Credentials: infra.Credentials,
			Gateway:     infra.Gateway,
		},
		Workflow: &workflow.Runtime{
			Gateway:     infra.Gateway,
			Credentials: infra.Credentials,
			Logger:      logger,
		},
		DefaultModel:  cfg.Providers.DefaultModel,
		MaxUploadSize: cfg.API.MaxUploadSizeBytes(),
	}
}
