package stockmentor

import (
	"context"
	"fmt"
	"strings"
)

// Generation defaults. Low temperature keeps the sectioned output consistent
// enough for the parser's JSON-first strategy to succeed most of the time.
const (
	defaultGenTemperature = 0.2
	defaultGenMaxTokens   = 1024
)

// GenerateOptions tune a single generation request.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int32
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.Temperature <= 0 {
		o.Temperature = defaultGenTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultGenMaxTokens
	}
	return o
}

// TextGenerator produces free-form text from a prompt. Implementations wrap
// one generative-AI provider each; callers treat any returned error as a
// recoverable generation failure and fall back to the deterministic
// explanation generator.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GeneratorConfig selects and configures a text generation provider.
type GeneratorConfig struct {
	Provider string // "gemini" (default), "openai", "anthropic"
	APIKey   string
	Model    string
	BaseURL  string
}

// NewTextGenerator constructs the configured provider client.
func NewTextGenerator(cfg GeneratorConfig) (TextGenerator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = "gemini"
	}
	switch provider {
	case "gemini":
		return newGeminiGenerator(cfg), nil
	case "openai":
		return newOpenAIGenerator(cfg), nil
	case "anthropic":
		return newAnthropicGenerator(cfg), nil
	default:
		return nil, NewError(ErrCodeInvalidInput, fmt.Sprintf("unknown AI provider: %s", cfg.Provider))
	}
}
