package credentials

import "errors"

// Domain errors for credential operations.
var (
	ErrNotConfigured          = errors.New("no API key configured for provider")
	ErrInvalidCredentialValue = errors.New("provider and credential must be non-empty")
)
