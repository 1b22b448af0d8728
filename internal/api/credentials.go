package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/lector/internal/credentials"
	"github.com/JaimeStill/lector/internal/providers"
	"github.com/JaimeStill/lector/pkg/handlers"
	"github.com/JaimeStill/lector/pkg/routes"
)

// CredentialsHandler provides HTTP endpoints for managing provider API keys.
// Key values are write-only: listings report configuration state, never the
// stored secrets.
type CredentialsHandler struct {
	credentials credentials.System
	gateway     *providers.Gateway
	logger      *slog.Logger
}

// ProviderStatus reports whether a known provider holds a usable credential.
type ProviderStatus struct {
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`
}

type setCredentialRequest struct {
	APIKey string `json:"api_key"`
}

// NewCredentialsHandler creates a CredentialsHandler from the API runtime.
func NewCredentialsHandler(runtime *Runtime) *CredentialsHandler {
	return &CredentialsHandler{
		credentials: runtime.Credentials,
		gateway:     runtime.Gateway,
		logger:      runtime.Logger.With("handler", "credentials"),
	}
}

// Routes returns the route group definition for credential endpoints.
func (h *CredentialsHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/credentials",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "PUT", Pattern: "/{provider}", Handler: h.Set},
			{Method: "DELETE", Pattern: "/{provider}", Handler: h.Delete},
		},
	}
}

// List returns the configuration state of every known provider.
func (h *CredentialsHandler) List(w http.ResponseWriter, r *http.Request) {
	known := h.gateway.Providers()
	configured := make(map[string]bool)
	for _, provider := range h.credentials.Configured(known) {
		configured[provider] = true
	}

	statuses := make([]ProviderStatus, 0, len(known))
	for _, provider := range known {
		statuses = append(statuses, ProviderStatus{
			Provider:   provider,
			Configured: configured[provider],
		})
	}

	handlers.RespondJSON(w, http.StatusOK, statuses)
}

// Set stores a provider credential and rebuilds the provider's client so
// the next completion uses the new key.
func (h *CredentialsHandler) Set(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	var req setCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, credentials.ErrInvalidCredentialValue)
		return
	}

	if req.APIKey == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, credentials.ErrInvalidCredentialValue)
		return
	}

	if err := h.gateway.Configure(r.Context(), provider, req.APIKey); err != nil {
		handlers.RespondError(w, h.logger, providers.MapHTTPStatus(err), err)
		return
	}

	if err := h.credentials.Set(r.Context(), provider, req.APIKey); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ProviderStatus{Provider: provider, Configured: true})
}

// Delete removes a provider credential and drops its live client. The
// environment default stays suppressed until a new key is set.
func (h *CredentialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	if err := h.credentials.Invalidate(r.Context(), provider); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.gateway.Reset(provider)
	w.WriteHeader(http.StatusNoContent)
}
