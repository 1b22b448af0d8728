package credentials

import "os"

// Environment variables that supply default API keys per provider.
const (
	EnvLectorGeminiAPIKey = "LECTOR_GEMINI_API_KEY"
	EnvLectorOpenAIAPIKey = "LECTOR_OPENAI_API_KEY"
)

var providerEnvVars = map[string]string{
	"gemini": EnvLectorGeminiAPIKey,
	"openai": EnvLectorOpenAIAPIKey,
}

// EnvDefault resolves a provider's environment-supplied API key, returning
// "" when the provider has no mapped variable or the variable is unset.
func EnvDefault(provider string) string {
	name, ok := providerEnvVars[provider]
	if !ok {
		return ""
	}
	return os.Getenv(name)
}
