package providers

import (
	"fmt"
	"strings"
)

// ParseModelID splits a provider-qualified model identifier of the form
// "provider/model-name". Returns ErrUnsupportedProvider for malformed
// identifiers or unknown provider prefixes.
func ParseModelID(modelID string) (provider, model string, err error) {
	provider, model, found := strings.Cut(modelID, "/")
	if !found || provider == "" || model == "" {
		return "", "", fmt.Errorf("%w: malformed model identifier %q", ErrUnsupportedProvider, modelID)
	}

	if _, ok := factories[provider]; !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}

	return provider, model, nil
}

// Known returns the provider names the gateway can dispatch to.
func Known() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
