package llm

import (
	"context"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateJSON generates a JSON document constrained by schema (nil means any JSON)
	GenerateJSON(ctx context.Context, prompt string, schema *Schema, tier ModelTier) (string, error)
	// GetModel returns the provider model name used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient builds the client for config.Provider; a nil config means Gemini defaults.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Provider == ProviderOpenAI {
		return NewOpenAIClient(config, apiKey)
	}
	return NewGeminiClient(ctx, config, apiKey)
}
