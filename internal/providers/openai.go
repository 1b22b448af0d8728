package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/JaimeStill/lector/internal/config"
)

type openaiClient struct {
	http *resty.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func newOpenAIClient(_ context.Context, credential string, cfg *config.ProvidersConfig) (Client, error) {
	client := resty.New().
		SetBaseURL(cfg.OpenAIBaseURL).
		SetAuthToken(credential).
		SetHeader("Content-Type", "application/json")

	return &openaiClient{http: client}, nil
}

func (c *openaiClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	var (
		result chatResponse
		apiErr apiError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", ErrInvalidCredential, apiErr.Error.Message)
	case !resp.IsSuccess():
		return "", fmt.Errorf("%w: status %d: %s", ErrProviderRequest, resp.StatusCode(), apiErr.Error.Message)
	case len(result.Choices) == 0:
		return "", fmt.Errorf("%w: empty response", ErrProviderRequest)
	}

	return result.Choices[0].Message.Content, nil
}
