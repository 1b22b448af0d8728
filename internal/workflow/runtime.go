package workflow

import (
	"context"
	"log/slog"
)

// CompletionGateway is the slice of the provider gateway the orchestrator
// drives: one blocking completion per agent, plus the explicit client drop
// that follows credential invalidation.
type CompletionGateway interface {
	Complete(ctx context.Context, modelID, prompt string) (string, error)
	Reset(provider string)
}

// CredentialStore is the slice of the credential system the orchestrator
// consults: the up-front precondition check and the invalidation side
// effect for rejected keys.
type CredentialStore interface {
	IsConfigured(provider string) bool
	Invalidate(ctx context.Context, provider string) error
}

// Runtime bundles the dependencies a workflow run requires. It is
// constructed by higher-level composition code from the infrastructure
// systems.
type Runtime struct {
	Gateway     CompletionGateway
	Credentials CredentialStore
	Logger      *slog.Logger
}
