package stockmentor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func setupExplainCore(t *testing.T, gen TextGenerator) (*Core, *fakeMarketDoer, func()) {
	t.Helper()
	doer := newFakeMarketDoer()
	doer.installSymbol("AAPL", "Apple Inc", 100, 110)
	core, cleanup := setupTestDBWithOptions(t, Options{
		MarketBaseURL:    "http://market.test",
		MarketHTTPClient: doer,
		TextGenerator:    gen,
	})
	return core, doer, cleanup
}

func TestExplainStockStructuredResponse(t *testing.T) {
	gen := &stubGenerator{response: `{"explanation": "Apple makes devices.", "risks": ["Competition"], "advice": "Study the ecosystem."}`}
	core, _, cleanup := setupExplainCore(t, gen)
	defer cleanup()

	result, err := core.ExplainStock(context.Background(), "AAPL", nil, nil)
	assertNoError(t, err, "explain")
	if result.Source != StageStructuredJSON {
		t.Errorf("source = %s", result.Source)
	}
	if result.Explanation != "Apple makes devices." {
		t.Errorf("explanation = %q", result.Explanation)
	}

	// The prompt should carry the resolved defaults.
	if !strings.Contains(gen.lastPrompt, "- Knowledge Level: beginner") {
		t.Errorf("prompt missing default knowledge level:\n%s", gen.lastPrompt)
	}
}

func TestExplainStockGeneratorFailureFallsBack(t *testing.T) {
	core, _, cleanup := setupExplainCore(t, &stubGenerator{err: errGeneratorDown})
	defer cleanup()

	result, err := core.ExplainStock(context.Background(), "AAPL", nil, nil)
	assertNoError(t, err, "explain with failing generator")
	if result.Source != StageFallback {
		t.Fatalf("source = %s, want %s", result.Source, StageFallback)
	}
	if !strings.Contains(result.Explanation, "Apple Inc") {
		t.Errorf("fallback explanation missing company name: %q", result.Explanation)
	}
	if len(result.Risks) != 3 {
		t.Errorf("fallback risks = %d, want 3", len(result.Risks))
	}
}

func TestExplainStockNoGeneratorConfigured(t *testing.T) {
	core, _, cleanup := setupExplainCore(t, nil)
	defer cleanup()

	result, err := core.ExplainStock(context.Background(), "AAPL", nil, nil)
	assertNoError(t, err, "explain without generator")
	if result.Source != StageFallback {
		t.Fatalf("source = %s, want %s", result.Source, StageFallback)
	}
}

func TestExplainStockMarketFailureIsTerminal(t *testing.T) {
	core, _, cleanup := setupExplainCore(t, &stubGenerator{response: "irrelevant"})
	defer cleanup()

	_, err := core.ExplainStock(context.Background(), "UNKNOWN", nil, nil)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestExplainStockPersonalization(t *testing.T) {
	gen := &stubGenerator{response: `{"explanation": "E", "risks": ["R"], "advice": "A"}`}
	core, _, cleanup := setupExplainCore(t, gen)
	defer cleanup()

	stored := &UserProfile{KnowledgeLevel: "advanced", RiskTolerance: "conservative", FinancialGoals: []string{"retirement"}}
	prefs := &ExplainPreferences{RiskTolerance: "aggressive"}
	_, err := core.ExplainStock(context.Background(), "AAPL", stored, prefs)
	assertNoError(t, err, "explain")

	if !strings.Contains(gen.lastPrompt, "- Knowledge Level: advanced") {
		t.Errorf("prompt should use stored knowledge level")
	}
	if !strings.Contains(gen.lastPrompt, "- Risk Tolerance: aggressive") {
		t.Errorf("prompt should use the override tolerance")
	}
	if !strings.Contains(gen.lastPrompt, "retirement") {
		t.Errorf("prompt should mention financial goals")
	}
}

func TestExplainStockUnparseableOutput(t *testing.T) {
	gen := &stubGenerator{response: "total word salad"}
	core, _, cleanup := setupExplainCore(t, gen)
	defer cleanup()

	result, err := core.ExplainStock(context.Background(), "AAPL", nil, nil)
	assertNoError(t, err, "explain")
	if result.Source != StagePlaceholder {
		t.Errorf("source = %s, want %s", result.Source, StagePlaceholder)
	}
	if result.Explanation != placeholderExplanation {
		t.Errorf("explanation = %q", result.Explanation)
	}
}
