package stockmentor

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openaiGenerator calls an OpenAI-compatible chat completions endpoint.
type openaiGenerator struct {
	client openai.Client
	model  string
}

func newOpenAIGenerator(cfg GeneratorConfig) *openaiGenerator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiGenerator{client: openai.NewClient(opts...), model: model}
}

func (g *openaiGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	opts = opts.withDefaults()

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(float64(opts.Temperature)),
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
	})
	if err != nil {
		return "", WrapError(ErrCodeUpstream, "openai chat completion", err)
	}
	if len(completion.Choices) == 0 {
		return "", NewError(ErrCodeUpstream, "openai response has no choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", NewError(ErrCodeUpstream, "openai response content is empty")
	}
	return content, nil
}
