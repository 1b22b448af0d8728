package workflow

import (
	"errors"
	"net/http"
)

// Precondition errors surfaced before any agent state mutation.
var (
	ErrNoDocument         = errors.New("load a document before running the workflow")
	ErrNoAgents           = errors.New("add at least one agent before running the workflow")
	ErrMissingCredentials = errors.New("missing API keys for providers")
)

// MapHTTPStatus maps workflow precondition errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoDocument) || errors.Is(err, ErrNoAgents) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrMissingCredentials) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
