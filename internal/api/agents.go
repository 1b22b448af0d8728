package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/session"
	"github.com/JaimeStill/lector/pkg/handlers"
	"github.com/JaimeStill/lector/pkg/routes"
)

// AgentsHandler provides HTTP endpoints for composing the session's agent
// registry and browsing stored presets.
type AgentsHandler struct {
	session   session.System
	templates agents.TemplateSystem
	logger    *slog.Logger
}

// CreateAgentRequest defines an agent either inline or by reference to a
// stored preset. When TemplateID is set the preset supplies name and prompt;
// inline fields override the preset's model.
type CreateAgentRequest struct {
	TemplateID *uuid.UUID `json:"template_id"`
	Name       string     `json:"name"`
	Prompt     string     `json:"prompt"`
	Model      string     `json:"model"`
}

// NewAgentsHandler creates an AgentsHandler from the API domain and runtime.
func NewAgentsHandler(domain *Domain, runtime *Runtime) *AgentsHandler {
	return &AgentsHandler{
		session:   domain.Session,
		templates: domain.Templates,
		logger:    runtime.Logger.With("handler", "agents"),
	}
}

// Routes returns the route group definition for agent endpoints.
func (h *AgentsHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/agents",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/templates", Handler: h.Templates},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns the ordered agent registry with current statuses.
func (h *AgentsHandler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.session.Agents())
}

// Templates returns the stored agent presets.
func (h *AgentsHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, templates)
}

// Create appends an agent to the registry, either from a stored preset or
// from inline fields.
func (h *AgentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, agents.ErrInvalidAgent)
		return
	}

	template, err := h.resolveTemplate(r, req)
	if err != nil {
		handlers.RespondError(w, h.logger, agents.MapHTTPStatus(err), err)
		return
	}

	agent := h.session.AddAgent(template)
	handlers.RespondJSON(w, http.StatusCreated, agent)
}

func (h *AgentsHandler) resolveTemplate(r *http.Request, req CreateAgentRequest) (agents.Template, error) {
	if req.TemplateID != nil {
		stored, err := h.templates.Find(r.Context(), *req.TemplateID)
		if err != nil {
			return agents.Template{}, err
		}

		template := stored.Template()
		if req.Model != "" {
			template.Model = req.Model
		}
		return template, nil
	}

	if req.Name == "" || req.Prompt == "" {
		return agents.Template{}, agents.ErrInvalidAgent
	}

	return agents.Template{
		Name:   req.Name,
		Prompt: req.Prompt,
		Model:  req.Model,
	}, nil
}

// Update mutates the prompt and/or model of an agent by its UUID path
// parameter.
func (h *AgentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, agents.ErrInvalidAgent)
		return
	}

	var update agents.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, agents.ErrInvalidAgent)
		return
	}

	if !h.session.UpdateAgent(id, update) {
		handlers.RespondError(w, h.logger, http.StatusNotFound, agents.ErrAgentNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an agent by its UUID path parameter.
func (h *AgentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, agents.ErrInvalidAgent)
		return
	}

	if !h.session.RemoveAgent(id) {
		handlers.RespondError(w, h.logger, http.StatusNotFound, agents.ErrAgentNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
