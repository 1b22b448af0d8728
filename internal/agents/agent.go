// Package agents implements the agent domain: the unit of review work, the
// ordered registry executed by the workflow, and the stored template presets
// users instantiate agents from.
package agents

import "github.com/google/uuid"

// Status is the per-agent workflow state.
type Status string

// Agent state machine values: Pending → Running → {Success | Error}.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Agent is one step of the review workflow: an instruction prompt bound to
// a provider-qualified model, plus the state of its most recent run.
//
// At most one of Output and Error is populated at a time; both are cleared
// when a new run starts. OutputJSON is populated only on Success, and only
// when a JSON value could be recovered from Output.
type Agent struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Prompt     string    `json:"prompt"`
	Model      string    `json:"model"`
	Status     Status    `json:"status"`
	Output     string    `json:"output,omitempty"`
	Error      string    `json:"error,omitempty"`
	OutputJSON any       `json:"output_json,omitempty"`
}

// Template carries the fields copied into a new Agent. An empty Model
// falls back to the registry's default.
type Template struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

// Update carries optional field mutations for an existing agent.
// Nil fields are left untouched.
type Update struct {
	Prompt *string `json:"prompt"`
	Model  *string `json:"model"`
}
