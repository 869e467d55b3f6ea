// Package strategy turns a brand brief into a validated content-marketing strategy.
// It builds the prompt, issues a single structured-output request and validates the reply.
package strategy

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/content-calendar/internal/llm"
	"github.com/jonathan/content-calendar/internal/types"
	"go.uber.org/zap"
)

// Config configures a Generator
type Config struct {
	// APIKey is the credential for the generation service. Required by New.
	APIKey string
	// LLM selects provider and models; nil means llm.DefaultConfig().
	LLM *llm.Config
	// Tier is the model tier used for generation; empty means llm.TierStandard.
	Tier llm.ModelTier
	// Logger receives diagnostics; nil means no logging.
	Logger *zap.Logger
}

// Generator requests content strategies from a generation service.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// New creates a Generator backed by the provider in cfg.LLM.
// A missing credential is reported as *ConfigurationError before any client is created.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{
			Setting: "api_key",
			Message: "API key is required (set GEMINI_API_KEY or pass --api-key)",
		}
	}

	llmConfig := cfg.LLM
	if llmConfig == nil {
		llmConfig = llm.DefaultConfig()
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, &ConfigurationError{
			Setting: "llm",
			Message: err.Error(),
		}
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Generator around an existing client. cfg.APIKey and cfg.LLM are ignored.
func NewWithClient(client llm.Client, cfg Config) *Generator {
	tier := cfg.Tier
	if tier == "" {
		tier = llm.TierStandard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client: client,
		tier:   tier,
		logger: logger,
	}
}

// Model returns the provider model name requests are sent to
func (g *Generator) Model() string {
	return g.client.GetModel(g.tier)
}

// Close releases the underlying client
func (g *Generator) Close() error {
	return g.client.Close()
}

// Generate builds the prompt for form, sends it with the response schema in one request
// and returns the validated strategy.
// Failures are *TransportError when the call fails and *GenerationError when the reply
// cannot be parsed or does not match the schema. ctx is passed through untouched;
// timeouts and cancellation belong to the caller.
func (g *Generator) Generate(ctx context.Context, form types.FormState) (*types.ContentStrategy, error) {
	prompt := BuildPrompt(form)

	g.logger.Debug("requesting content strategy",
		zap.String("model", g.Model()),
		zap.Int("prompt_bytes", len(prompt)))

	text, err := g.client.GenerateJSON(ctx, prompt, ResponseSchema(), g.tier)
	if err != nil {
		return nil, &TransportError{
			Message: "failed to generate content strategy",
			Cause:   err,
		}
	}

	strategy, err := ParseResponse(text)
	if err != nil {
		g.logger.Error("content strategy response rejected",
			zap.Error(err),
			zap.String("raw_response", text))
		return nil, err
	}

	g.logger.Debug("content strategy generated",
		zap.Int("calendar_entries", len(strategy.Calendar)),
		zap.Int("briefs", len(strategy.Briefs)))

	return strategy, nil
}

// ParseResponse turns a model reply into a ContentStrategy.
// The text is trimmed (and unfenced), decoded, and checked against JSONSchema() so that
// every section and leaf field is present with the right type. Any failure is a *GenerationError.
func ParseResponse(text string) (*types.ContentStrategy, error) {
	payload := []byte(llm.CleanJSONBlock(text))

	var strategy types.ContentStrategy
	if err := json.Unmarshal(payload, &strategy); err != nil {
		return nil, &GenerationError{Message: MalformedResponseMessage, Raw: text, Cause: err}
	}

	v, err := responseValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(payload); err != nil {
		return nil, &GenerationError{Message: MalformedResponseMessage, Raw: text, Cause: err}
	}

	return &strategy, nil
}
