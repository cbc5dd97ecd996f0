package stockmentor

import (
	"context"
	"time"
)

// Explanations are grounded in a year of price history regardless of what
// period the caller last viewed.
const explainPeriod = "1Y"

const generateTimeout = 30 * time.Second

// ExplainStock runs the end-to-end explanation pipeline for a symbol:
// fetch market data, resolve the personalization context, build the prompt,
// call the generative provider, and parse the response. A market-data failure
// is terminal; any generation or parse failure degrades to the deterministic
// fallback so the caller always receives a complete result.
func (c *Core) ExplainStock(ctx context.Context, symbol string, stored *UserProfile, prefs *ExplainPreferences) (*ExplanationResult, error) {
	snap, err := c.market.Snapshot(ctx, symbol, explainPeriod)
	if err != nil {
		return nil, err
	}

	persona := resolvePersonalization(stored, prefs)
	if c.generator == nil {
		result := fallbackExplanation(snap, persona)
		return &result, nil
	}
	prompt := buildExplanationPrompt(snap, persona)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	raw, err := c.generator.Generate(genCtx, prompt, GenerateOptions{})
	if err != nil {
		c.logger.Warn("generation failed; using fallback explanation", "symbol", snap.Symbol, "err", err)
		result := fallbackExplanation(snap, persona)
		return &result, nil
	}

	result := parseGeneratedExplanation(raw)
	if result.Source == StagePlaceholder {
		c.logger.Warn("generated output unparseable; placeholders substituted", "symbol", snap.Symbol)
	}
	return &result, nil
}
