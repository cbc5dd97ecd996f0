package stockmentor

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testSnapshot() *StockSnapshot {
	return &StockSnapshot{
		Symbol:      "AAPL",
		Name:        "Apple Inc",
		Price:       210.5,
		Description: "Apple designs consumer electronics.",
		Stats: map[string]float64{
			"marketCap":     2_500_000_000_000,
			"peRatio":       28.473,
			"dividendYield": 0.55,
			"volume":        51234567,
		},
	}
}

func TestBuildExplanationPromptSections(t *testing.T) {
	persona := PersonalizationContext{
		KnowledgeLevel: "intermediate",
		RiskTolerance:  "aggressive",
		FinancialGoals: []string{"retirement", "travel"},
	}
	prompt := buildExplanationPrompt(testSnapshot(), persona)

	for _, want := range []string{
		"Apple Inc (AAPL)",
		"COMPANY INFORMATION:",
		"KEY COMPANY FACTS:",
		"USER PROFILE:",
		"- Knowledge Level: intermediate (Options: beginner, intermediate, advanced)",
		"- Risk Tolerance: aggressive (Options: conservative, moderate, aggressive)",
		"Their financial goals include: retirement, travel.",
		"TASK:",
		`"risks" (as an array)`,
		"Use Markdown formatting",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildExplanationPromptAbsentData(t *testing.T) {
	snap := &StockSnapshot{Symbol: "XYZ"}
	prompt := buildExplanationPrompt(snap, resolvePersonalization(nil, nil))

	if !strings.Contains(prompt, "XYZ (XYZ)") {
		t.Errorf("blank name should fall back to symbol")
	}
	if !strings.Contains(prompt, "Information about XYZ is limited.") {
		t.Errorf("missing description placeholder")
	}
	if !strings.Contains(prompt, "No detailed company information is available") {
		t.Errorf("missing stats placeholder")
	}
	if !strings.Contains(prompt, "No specific financial goals have been specified.") {
		t.Errorf("missing goals placeholder")
	}
}

func TestFormatPromptStats(t *testing.T) {
	stats := map[string]float64{
		"marketCap": 2_500_000_000,
		"peRatio":   28.473,
		"volume":    1234567,
		"ignored":   42,
		"employees": 0,
	}
	formatted := formatPromptStats(stats)

	if !strings.Contains(formatted, "Market Cap: $2.50 billion") {
		t.Errorf("market cap formatting wrong:\n%s", formatted)
	}
	if !strings.Contains(formatted, "Pe Ratio: 28.47%") {
		t.Errorf("ratio formatting wrong:\n%s", formatted)
	}
	if !strings.Contains(formatted, "Volume: 1,234,567") {
		t.Errorf("volume formatting wrong:\n%s", formatted)
	}
	if strings.Contains(formatted, "ignored") {
		t.Errorf("non-allow-listed stat leaked:\n%s", formatted)
	}
	if strings.Contains(formatted, "Employees") {
		t.Errorf("zero-valued stat should be skipped:\n%s", formatted)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[float64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for input, want := range cases {
		if got := groupThousands(decimal.NewFromFloat(input)); got != want {
			t.Errorf("groupThousands(%v) = %q, want %q", input, got, want)
		}
	}
}

func TestTitleCaseKey(t *testing.T) {
	cases := map[string]string{
		"marketCap":     "Market Cap",
		"peRatio":       "Pe Ratio",
		"dividendYield": "Dividend Yield",
		"volume":        "Volume",
	}
	for input, want := range cases {
		if got := titleCaseKey(input); got != want {
			t.Errorf("titleCaseKey(%q) = %q, want %q", input, got, want)
		}
	}
}
