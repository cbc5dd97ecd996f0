package stockmentor

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiGenerator calls the Gemini API through the official client.
type geminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
}

func newGeminiGenerator(cfg GeneratorConfig) *geminiGenerator {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiGenerator{apiKey: cfg.APIKey, model: model, baseURL: strings.TrimSpace(cfg.BaseURL)}
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	opts = opts.withDefaults()

	clientConfig := &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", WrapError(ErrCodeUpstream, "create gemini client", err)
	}

	requestConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxTokens,
	}
	response, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), requestConfig)
	if err != nil {
		return "", WrapError(ErrCodeUpstream, "gemini generate content", err)
	}
	content := strings.TrimSpace(response.Text())
	if content == "" {
		return "", NewError(ErrCodeUpstream, "gemini response content is empty")
	}
	return content, nil
}
