package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "anthropic/claude-sonnet-4"

	openRouterTemperature = 0.3
	openRouterMaxTokens   = 4000
)

// OpenRouterAdapter drives any OpenRouter-hosted model through the
// OpenAI-compatible chat completions surface. It is the one adapter that
// receives structured conversation context from the caller instead of
// keeping its own buffer.
type OpenRouterAdapter struct {
	client *openai.Client
	model  string
}

func NewOpenRouterAdapter(apiKey, model string, timeout time.Duration) *OpenRouterAdapter {
	if model == "" {
		model = defaultOpenRouterModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	cfg.HTTPClient = newHTTPClient(timeout)
	return &OpenRouterAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenRouterAdapter) ModelName() string {
	return fmt.Sprintf("OpenRouter (%s)", o.model)
}

func (o *OpenRouterAdapter) Send(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Context)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt,
	})
	for _, m := range req.Context {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: BuildPrompt(req.UserText, req.EditorSnapshot),
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: openRouterTemperature,
		MaxTokens:   openRouterMaxTokens,
	})
	if err != nil {
		return "", rewriteOpenRouterError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// rewriteOpenRouterError maps the common auth and quota failures to messages
// short enough to show in a chat bubble.
func rewriteOpenRouterError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("invalid API key")
		case http.StatusTooManyRequests:
			return fmt.Errorf("rate limit exceeded")
		default:
			return &StatusError{Provider: "OpenRouter", StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
	}
	return fmt.Errorf("openrouter request failed: %w", err)
}
