package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/session"
	"github.com/JaimeStill/lector/internal/workflow"
	"github.com/JaimeStill/lector/pkg/handlers"
	"github.com/JaimeStill/lector/pkg/routes"
)

// WorkflowHandler provides HTTP endpoints for executing the review workflow
// and reading its aggregated result.
type WorkflowHandler struct {
	session session.System
	runtime *workflow.Runtime
	logger  *slog.Logger
}

// RunResponse pairs the per-agent outcomes with the aggregated analysis.
// Analysis is null when the run stopped before any aggregatable output.
type RunResponse struct {
	Agents   []*agents.Agent          `json:"agents"`
	Analysis *workflow.AnalysisResult `json:"analysis"`
}

// NewWorkflowHandler creates a WorkflowHandler from the API domain and runtime.
func NewWorkflowHandler(domain *Domain, runtime *Runtime) *WorkflowHandler {
	return &WorkflowHandler{
		session: domain.Session,
		runtime: runtime.Workflow,
		logger:  runtime.Logger.With("handler", "workflow"),
	}
}

// Routes returns the route group definition for workflow endpoints.
func (h *WorkflowHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/workflow",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/run", Handler: h.Run},
			{Method: "GET", Pattern: "/result", Handler: h.Result},
		},
	}
}

// Run executes all registered agents in order against the loaded document.
// Precondition failures reject the run without touching agent state; an
// agent failure stops the sequence and is reflected in the agent list.
func (h *WorkflowHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.Run(r.Context(), h.runtime)
	if err != nil {
		handlers.RespondError(w, h.logger, workflow.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RunResponse{
		Agents:   h.session.Agents(),
		Analysis: result,
	})
}

// Result returns the agent statuses and the last aggregated analysis, which
// is null until a run completes.
func (h *WorkflowHandler) Result(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, RunResponse{
		Agents:   h.session.Agents(),
		Analysis: h.session.Analysis(),
	})
}
