package agents

import (
	"strings"

	"github.com/google/uuid"
)

// Registry is the mutable ordered collection of agents for the current
// document. Insertion order is both execution order and display order;
// removal does not reorder remaining entries.
//
// The registry is not synchronized: it belongs to a single session and the
// orchestrator mutates it exclusively while a run is in flight. Callers
// guard concurrent list operations at the session boundary.
type Registry struct {
	agents       []*Agent
	defaultModel string
}

// NewRegistry creates an empty registry. Agents added without a model use
// defaultModel.
func NewRegistry(defaultModel string) *Registry {
	return &Registry{defaultModel: defaultModel}
}

// Add appends a new agent built from the template with a fresh id and
// Pending status. All output fields start absent.
func (r *Registry) Add(t Template) *Agent {
	model := t.Model
	if model == "" {
		model = r.defaultModel
	}

	agent := &Agent{
		ID:     uuid.New(),
		Name:   t.Name,
		Prompt: t.Prompt,
		Model:  model,
		Status: StatusPending,
	}

	r.agents = append(r.agents, agent)
	return agent
}

// Update mutates the prompt and/or model of the agent with the given id.
// Reports whether the agent was found; an unknown id is a no-op.
func (r *Registry) Update(id uuid.UUID, update Update) bool {
	for _, agent := range r.agents {
		if agent.ID != id {
			continue
		}
		if update.Prompt != nil {
			agent.Prompt = *update.Prompt
		}
		if update.Model != nil {
			agent.Model = *update.Model
		}
		return true
	}
	return false
}

// Remove deletes the agent with the given id, preserving the order of the
// remaining entries. Reports whether the agent was found.
func (r *Registry) Remove(id uuid.UUID) bool {
	for i, agent := range r.agents {
		if agent.ID == id {
			r.agents = append(r.agents[:i], r.agents[i+1:]...)
			return true
		}
	}
	return false
}

// ResetAll returns every agent to Pending and clears all output fields, so
// stale results never leak into a new run's aggregation.
func (r *Registry) ResetAll() {
	for _, agent := range r.agents {
		agent.Status = StatusPending
		agent.Output = ""
		agent.Error = ""
		agent.OutputJSON = nil
	}
}

// Clear empties the registry. Invoked when the session document is
// replaced or reset.
func (r *Registry) Clear() {
	r.agents = nil
}

// Agents returns the ordered agent list. The returned slice shares the
// registry's entries; it is a view, not a copy.
func (r *Registry) Agents() []*Agent {
	return r.agents
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	return len(r.agents)
}

// Providers returns the distinct provider prefixes referenced by the
// registry's agents, in first-reference order. Model identifiers without a
// parseable provider segment are skipped; those fail at dispatch instead.
func (r *Registry) Providers() []string {
	seen := make(map[string]bool)
	providers := make([]string, 0, len(r.agents))

	for _, agent := range r.agents {
		provider, model, found := strings.Cut(agent.Model, "/")
		if !found || provider == "" || model == "" {
			continue
		}
		if !seen[provider] {
			seen[provider] = true
			providers = append(providers, provider)
		}
	}

	return providers
}
