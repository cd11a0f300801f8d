package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleClient implements Client for OpenAI-compatible APIs. This covers
// services like OpenRouter, Ollama and Gemini's OpenAI-compatible endpoint.
type CompatibleClient struct {
	client openai.Client
	model  string
}

// NewCompatibleClient creates a client for an OpenAI-compatible API.
func NewCompatibleClient(apiKey, baseURL, model string) *CompatibleClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &CompatibleClient{client: client, model: model}
}

// Name returns the backend name.
func (c *CompatibleClient) Name() string {
	return BackendCompatible
}

// Test sends a short probe message and returns the response.
func (c *CompatibleClient) Test(ctx context.Context) (string, error) {
	return c.Complete(ctx, "", "Hello world")
}

// Complete generates a response without streaming.
func (c *CompatibleClient) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(content))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
