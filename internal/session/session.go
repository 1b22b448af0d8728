// Package session owns the working state of the current review: the loaded
// document, the ordered agent registry, and the last aggregated analysis.
// Nothing here is persisted; a session lives and dies with the process.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/documents"
	"github.com/JaimeStill/lector/internal/workflow"
)

// System defines the session operations exposed through the API.
type System interface {
	// Document returns the currently loaded document, or nil.
	Document() *documents.Document
	// SetDocument installs a new document, clearing the registry and any
	// prior analysis: agents belong to the document they were composed for.
	SetDocument(doc *documents.Document)
	// Reset clears the document, registry, and analysis.
	Reset()

	// Agents returns the ordered agent list.
	Agents() []*agents.Agent
	// AddAgent appends an agent built from the template.
	AddAgent(t agents.Template) *agents.Agent
	// UpdateAgent mutates an agent's prompt and/or model.
	UpdateAgent(id uuid.UUID, update agents.Update) bool
	// RemoveAgent deletes an agent by id.
	RemoveAgent(id uuid.UUID) bool

	// Run executes the workflow over the current document and registry and
	// records the aggregated analysis.
	Run(ctx context.Context, rt *workflow.Runtime) (*workflow.AnalysisResult, error)
	// Analysis returns the last aggregated analysis, or nil.
	Analysis() *workflow.AnalysisResult
}

type session struct {
	logger *slog.Logger

	// mu guards list-level operations only. A run deliberately executes
	// outside the lock: this is a single-user tool and mid-run external
	// edits are an accepted looseness, not a guarded case.
	mu       sync.Mutex
	document *documents.Document
	registry *agents.Registry
	analysis *workflow.AnalysisResult

	defaultModel string
}

// New creates an empty session whose agents default to defaultModel.
func New(defaultModel string, logger *slog.Logger) System {
	return &session{
		logger:       logger.With("system", "session"),
		registry:     agents.NewRegistry(defaultModel),
		defaultModel: defaultModel,
	}
}

func (s *session) Document() *documents.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

func (s *session) SetDocument(doc *documents.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.document = doc
	s.registry.Clear()
	s.analysis = nil

	s.logger.Info("document installed", "filename", doc.Filename, "type", doc.Type)
}

func (s *session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.document = nil
	s.registry.Clear()
	s.analysis = nil

	s.logger.Info("session reset")
}

func (s *session) Agents() []*agents.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Agents()
}

func (s *session) AddAgent(t agents.Template) *agents.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Add(t)
}

func (s *session) UpdateAgent(id uuid.UUID, update agents.Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Update(id, update)
}

func (s *session) RemoveAgent(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Remove(id)
}

func (s *session) Run(ctx context.Context, rt *workflow.Runtime) (*workflow.AnalysisResult, error) {
	// The prior analysis survives until a run actually produces a new
	// one; a refused run must leave session state untouched.
	s.mu.Lock()
	doc := s.document
	registry := s.registry
	s.mu.Unlock()

	if doc == nil {
		return nil, workflow.ErrNoDocument
	}

	result, err := workflow.Run(ctx, rt, doc, registry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.analysis = result
	s.mu.Unlock()

	return result, nil
}

func (s *session) Analysis() *workflow.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}
