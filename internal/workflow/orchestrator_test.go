package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/documents"
	"github.com/JaimeStill/lector/internal/providers"
	"github.com/JaimeStill/lector/internal/workflow"
)

type fakeGateway struct {
	outputs  map[string]string
	failures map[string]error
	prompts  []string
	resets   []string
}

func (g *fakeGateway) Complete(ctx context.Context, modelID, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if err, ok := g.failures[modelID]; ok {
		return "", fmt.Errorf("%s: %w", strings.SplitN(modelID, "/", 2)[0], err)
	}
	return g.outputs[modelID], nil
}

func (g *fakeGateway) Reset(provider string) {
	g.resets = append(g.resets, provider)
}

type fakeCredentials struct {
	configured  map[string]bool
	invalidated []string
}

func (c *fakeCredentials) IsConfigured(provider string) bool {
	return c.configured[provider]
}

func (c *fakeCredentials) Invalidate(ctx context.Context, provider string) error {
	c.invalidated = append(c.invalidated, provider)
	return nil
}

func newRuntime(gateway *fakeGateway, creds *fakeCredentials) *workflow.Runtime {
	return &workflow.Runtime{
		Gateway:     gateway,
		Credentials: creds,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func textDocument(content string) *documents.Document {
	return &documents.Document{
		Filename: "contract.txt",
		Type:     documents.TypeTXT,
		Content:  content,
	}
}

func TestRunSuccess(t *testing.T) {
	gateway := &fakeGateway{
		outputs: map[string]string{
			"gemini/gemini-2.5-flash": "A concise summary.",
			"openai/gpt-4o":           "```json\n{\"sentiment\":\"positive\",\"confidence\":0.9}\n```",
		},
	}
	creds := &fakeCredentials{configured: map[string]bool{"gemini": true, "openai": true}}

	registry := agents.NewRegistry("gemini/gemini-2.5-flash")
	summarizer := registry.Add(agents.Template{Name: "Summarizer", Prompt: "Summarize."})
	analyzer := registry.Add(agents.Template{Name: "Sentiment Analyzer", Prompt: "Assess sentiment.", Model: "openai/gpt-4o"})

	result, err := workflow.Run(context.Background(), newRuntime(gateway, creds), textDocument("The deal closed."), registry)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if summarizer.Status != agents.StatusSuccess || analyzer.Status != agents.StatusSuccess {
		t.Errorf("statuses = %q, %q, want success, success", summarizer.Status, analyzer.Status)
	}
	if summarizer.Output != "A concise summary." {
		t.Errorf("Output = %q, want raw completion text", summarizer.Output)
	}
	if summarizer.OutputJSON != nil {
		t.Error("OutputJSON populated for prose output")
	}
	if analyzer.OutputJSON == nil {
		t.Error("OutputJSON not extracted from fenced response")
	}

	if result.Sentiment == nil {
		t.Fatal("Sentiment = nil, want aggregated histogram")
	}
	if result.Sentiment.Positive != 1 || result.Sentiment.Negative != 0 || result.Sentiment.Neutral != 0 {
		t.Errorf("Sentiment = %+v, want {1 0 0}", result.Sentiment)
	}
}

func TestRunPromptComposition(t *testing.T) {
	gateway := &fakeGateway{
		outputs: map[string]string{"gemini/gemini-2.5-flash": "first output"},
	}
	creds := &fakeCredentials{configured: map[string]bool{"gemini": true}}

	registry := agents.NewRegistry("gemini/gemini-2.5-flash")
	registry.Add(agents.Template{Name: "First", Prompt: "Do the first thing."})
	registry.Add(agents.Template{Name: "Second", Prompt: "Do the second thing."})

	if _, err := workflow.Run(context.Background(), newRuntime(gateway, creds), textDocument("Body text."), registry); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(gateway.prompts) != 2 {
		t.Fatalf("prompts = %d, want 2", len(gateway.prompts))
	}

	for i, prompt := range gateway.prompts {
		if !strings.Contains(prompt, "Body text.") {
			t.Errorf("prompts[%d] missing document content", i)
		}
	}
	if !strings.Contains(gateway.prompts[1], "Do the second thing.") {
		t.Error("prompts[1] missing agent instructions")
	}
	if strings.Contains(gateway.prompts[1], "first output") {
		t.Error("prompts[1] contains prior agent output; outputs must not thread forward")
	}
}

func TestRunFailFast(t *testing.T) {
	gateway := &fakeGateway{
		outputs:  map[string]string{"gemini/gemini-2.5-flash": "ok"},
		failures: map[string]error{"openai/gpt-4o": providers.ErrProviderRequest},
	}
	creds := &fakeCredentials{configured: map[string]bool{"gemini": true, "openai": true}}

	registry := agents.NewRegistry("gemini/gemini-2.5-flash")
	first := registry.Add(agents.Template{Name: "First", Prompt: "a"})
	second := registry.Add(agents.Template{Name: "Second", Prompt: "b", Model: "openai/gpt-4o"})
	third := registry.Add(agents.Template{Name: "Third", Prompt: "c"})

	result, err := workflow.Run(context.Background(), newRuntime(gateway, creds), textDocument("content"), registry)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if first.Status != agents.StatusSuccess {
		t.Errorf("first.Status = %q, want success", first.Status)
	}
	if second.Status != agents.StatusError {
		t.Errorf("second.Status = %q, want error", second.Status)
	}
	if second.Error == "" {
		t.Error("second.Error empty, want failure message")
	}
	if third.Status != agents.StatusPending {
		t.Errorf("third.Status = %q, want pending after fail-fast stop", third.Status)
	}

	if len(gateway.prompts) != 2 {
		t.Errorf("completions = %d, want 2; later agents must not run", len(gateway.prompts))
	}
	if result == nil {
		t.Error("result = nil, want aggregation over partial states")
	}
}

func TestRunPreconditions(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		creds := &fakeCredentials{configured: map[string]bool{"gemini": true}}
		registry := agents.NewRegistry("gemini/gemini-2.5-flash")
		registry.Add(agents.Template{Name: "First", Prompt: "a"})

		doc := &documents.Document{Filename: "empty.txt", Type: documents.TypeEmpty}
		_, err := workflow.Run(context.Background(), newRuntime(&fakeGateway{}, creds), doc, registry)

		if !errors.Is(err, workflow.ErrNoDocument) {
			t.Errorf("err = %v, want ErrNoDocument", err)
		}
	})

	t.Run("no agents", func(t *testing.T) {
		creds := &fakeCredentials{configured: map[string]bool{"gemini": true}}
		registry := agents.NewRegistry("gemini/gemini-2.5-flash")

		_, err := workflow.Run(context.Background(), newRuntime(&fakeGateway{}, creds), textDocument("content"), registry)

		if !errors.Is(err, workflow.ErrNoAgents) {
			t.Errorf("err = %v, want ErrNoAgents", err)
		}
	})

	t.Run("missing credentials lists every provider", func(t *testing.T) {
		gateway := &fakeGateway{}
		creds := &fakeCredentials{configured: map[string]bool{}}

		registry := agents.NewRegistry("gemini/gemini-2.5-flash")
		first := registry.Add(agents.Template{Name: "First", Prompt: "a", Model: "gemini/gemini-2.5-flash"})
		second := registry.Add(agents.Template{Name: "Second", Prompt: "b", Model: "openai/gpt-4o"})

		_, err := workflow.Run(context.Background(), newRuntime(gateway, creds), textDocument("content"), registry)

		if !errors.Is(err, workflow.ErrMissingCredentials) {
			t.Fatalf("err = %v, want ErrMissingCredentials", err)
		}
		if !strings.Contains(err.Error(), "gemini") || !strings.Contains(err.Error(), "openai") {
			t.Errorf("err = %v, want both providers named", err)
		}

		if first.Status != agents.StatusPending || second.Status != agents.StatusPending {
			t.Error("agent state mutated by rejected run")
		}
		if len(gateway.prompts) != 0 {
			t.Error("completions dispatched despite precondition failure")
		}
	})
}

func TestRunInvalidCredential(t *testing.T) {
	gateway := &fakeGateway{
		failures: map[string]error{"openai/gpt-4o": providers.ErrInvalidCredential},
	}
	creds := &fakeCredentials{configured: map[string]bool{"openai": true}}

	registry := agents.NewRegistry("gemini/gemini-2.5-flash")
	agent := registry.Add(agents.Template{Name: "Analyzer", Prompt: "a", Model: "openai/gpt-4o"})

	if _, err := workflow.Run(context.Background(), newRuntime(gateway, creds), textDocument("content"), registry); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if agent.Status != agents.StatusError {
		t.Errorf("Status = %q, want error", agent.Status)
	}
	if !strings.Contains(agent.Error, "API key") {
		t.Errorf("Error = %q, want API key rejection surfaced", agent.Error)
	}

	if len(creds.invalidated) != 1 || creds.invalidated[0] != "openai" {
		t.Errorf("invalidated = %v, want [openai]", creds.invalidated)
	}
	if len(gateway.resets) != 1 || gateway.resets[0] != "openai" {
		t.Errorf("resets = %v, want [openai]", gateway.resets)
	}
}
