package agents

import (
	"errors"
	"net/http"
)

// Domain errors for agent operations.
var (
	ErrAgentNotFound    = errors.New("agent not found")
	ErrTemplateNotFound = errors.New("agent template not found")
	ErrInvalidAgent     = errors.New("invalid agent definition")
)

// MapHTTPStatus maps agent domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrAgentNotFound) || errors.Is(err, ErrTemplateNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidAgent) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
