package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/JaimeStill/lector/internal/config"
)

const ocrPrompt = "Extract all text content from this page image. " +
	"Preserve the reading order and paragraph structure. " +
	"Respond with the extracted text only, no commentary."

type geminiClient struct {
	client *genai.Client
}

func newGeminiClient(ctx context.Context, credential string, _ *config.ProvidersConfig) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(credential))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

func (c *geminiClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return geminiText(resp)
}

func (c *geminiClient) OCR(ctx context.Context, model string, image []byte) (string, error) {
	resp, err := c.client.GenerativeModel(model).GenerateContent(
		ctx,
		genai.ImageData("png", image),
		genai.Text(ocrPrompt),
	)
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return geminiText(resp)
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty response", ErrProviderRequest)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

// classifyGeminiError maps backend failures onto the gateway taxonomy.
// The Gemini API reports a bad key as 400 INVALID_ARGUMENT with an
// "API key not valid" message rather than a clean 401.
func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		case apiErr.Code == 400 && strings.Contains(apiErr.Message, "API key"):
			return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrProviderRequest, err)
}
