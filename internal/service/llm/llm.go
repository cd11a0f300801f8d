// Package llm wraps the chat-completion backends that power the generative
// translation path: translation itself, semantic scoring, word alternatives,
// variations and the rule-transformation rewrite.
package llm

import (
	"context"
	"errors"

	"hanmal/backend/internal/logger"
)

// Client is a minimal chat-completion client.
type Client interface {
	// Name returns the backend name.
	Name() string
	// Complete sends a system prompt plus user content and returns the
	// text reply.
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
	// Test sends a short probe message and returns the response.
	Test(ctx context.Context) (string, error)
}

// Config holds the configuration for a chat backend.
type Config struct {
	Backend string // openai, anthropic, compatible
	APIKey  string
	BaseURL string // optional for openai/anthropic, required for compatible
	Model   string
}

// Backend name constants.
const (
	BackendOpenAI     = "openai"
	BackendAnthropic  = "anthropic"
	BackendCompatible = "compatible"
)

var (
	ErrInvalidBackend = errors.New("invalid llm backend")
	ErrMissingBaseURL = errors.New("base URL is required for compatible backend")
	ErrMissingModel   = errors.New("model is required")
)

// NewClient builds a chat client for the configured backend. A missing API
// key is logged rather than rejected: the process can start without
// credentials and the first outbound call reports the real failure.
func NewClient(cfg Config) (Client, error) {
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}
	if cfg.APIKey == "" {
		logger.Warn("llm api key missing, calls will fail until configured",
			"module", "llm", "action", "init", "resource", "llm", "result", "degraded",
			"backend", cfg.Backend)
	}

	switch cfg.Backend {
	case BackendOpenAI, "":
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case BackendAnthropic:
		return NewAnthropicClient(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case BackendCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleClient(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, ErrInvalidBackend
	}
}
