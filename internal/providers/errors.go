package providers

import (
	"errors"
	"net/http"
)

// Error taxonomy for gateway operations. The orchestrator matches these
// with errors.Is; ErrInvalidCredential is the one class that triggers
// credential invalidation as a side effect.
var (
	ErrUnsupportedProvider   = errors.New("unsupported provider")
	ErrProviderNotConfigured = errors.New("provider not configured")
	ErrInvalidCredential     = errors.New("invalid API key")
	ErrProviderRequest       = errors.New("provider request failed")
)

// MapHTTPStatus maps gateway errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedProvider):
		return http.StatusBadRequest
	case errors.Is(err, ErrProviderNotConfigured):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrProviderRequest):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
