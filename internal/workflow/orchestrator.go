// Package workflow drives sequential agent execution against the completion
// provider gateway, applying the per-agent state machine and fail-fast
// policy, then aggregating recognized semantic roles into an analysis
// summary.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/documents"
	"github.com/JaimeStill/lector/internal/providers"
	"github.com/JaimeStill/lector/pkg/formatting"
)

type fault struct {
	model string
	err   error
}

// Run executes one complete pass over the registry in insertion order.
//
// Preconditions are checked before any state mutation: the document must
// have content and every distinct provider referenced by the registry must
// hold a configured credential. The credential check covers the whole agent
// set up front so the user learns about every missing key before any agent
// runs, rather than stalling mid-run.
//
// Each agent sees only the original document content; prior agents' outputs
// are never threaded into later prompts. The first agent failure stops the
// loop and later agents stay Pending: downstream agents typically assume
// earlier context exists, so continuing would produce misleading partial
// results. Aggregation always runs over the final agent states, and a
// rejected key additionally invalidates the stored credential so the next
// run re-prompts for it.
func Run(
	ctx context.Context,
	rt *Runtime,
	doc *documents.Document,
	registry *agents.Registry,
) (*AnalysisResult, error) {
	if err := validate(rt, doc, registry); err != nil {
		return nil, err
	}

	registry.ResetAll()

	var failure *fault

	for _, agent := range registry.Agents() {
		agent.Status = agents.StatusRunning
		rt.Logger.InfoContext(
			ctx, "agent running",
			"agent", agent.Name,
			"model", agent.Model,
		)

		output, err := rt.Gateway.Complete(ctx, agent.Model, composePrompt(agent.Prompt, doc.Content))
		if err != nil {
			agent.Status = agents.StatusError
			agent.Error = err.Error()
			failure = &fault{model: agent.Model, err: err}

			rt.Logger.ErrorContext(
				ctx, "agent failed",
				"agent", agent.Name,
				"model", agent.Model,
				"error", err,
			)
			break
		}

		agent.Status = agents.StatusSuccess
		agent.Output = output
		if value, ok := formatting.ExtractJSON(output); ok {
			agent.OutputJSON = value
		}

		rt.Logger.InfoContext(
			ctx, "agent succeeded",
			"agent", agent.Name,
			"structured", agent.OutputJSON != nil,
		)
	}

	result := Aggregate(registry.Agents())

	if failure != nil && errors.Is(failure.err, providers.ErrInvalidCredential) {
		invalidateCredential(ctx, rt, failure.model)
	}

	return result, nil
}

func validate(rt *Runtime, doc *documents.Document, registry *agents.Registry) error {
	if doc.Empty() {
		return ErrNoDocument
	}
	if registry.Len() == 0 {
		return ErrNoAgents
	}

	var missing []string
	for _, provider := range registry.Providers() {
		if !rt.Credentials.IsConfigured(provider) {
			missing = append(missing, provider)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return nil
}

// composePrompt joins the agent's instructions with the document content.
// Only the original document is provided; the workflow deliberately does
// not feed earlier agents' outputs forward.
func composePrompt(instructions, content string) string {
	return instructions + "\n\nDocument content:\n" + content
}

func invalidateCredential(ctx context.Context, rt *Runtime, modelID string) {
	provider, _, err := providers.ParseModelID(modelID)
	if err != nil {
		return
	}

	if err := rt.Credentials.Invalidate(ctx, provider); err != nil {
		rt.Logger.ErrorContext(ctx, "credential invalidation failed", "provider", provider, "error", err)
		return
	}

	rt.Gateway.Reset(provider)
	rt.Logger.WarnContext(ctx, "credential invalidated after rejection", "provider", provider)
}
