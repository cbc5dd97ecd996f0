package stockmentor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// promptStatOrder is the allow-list of snapshot stats the prompt may mention,
// in the order they are rendered. Anything else in the stats map is ignored.
var promptStatOrder = []string{"marketCap", "sector", "industry", "peRatio", "dividendYield", "employees", "volume"}

var billion = decimal.NewFromInt(1_000_000_000)

// buildExplanationPrompt renders the stock snapshot and personalization
// context into the generation request. Pure templating — deterministic for
// identical inputs, no network or state.
func buildExplanationPrompt(snap *StockSnapshot, persona PersonalizationContext) string {
	name := snap.Name
	if strings.TrimSpace(name) == "" {
		name = snap.Symbol
	}
	description := strings.TrimSpace(snap.Description)
	if description == "" {
		description = fmt.Sprintf("Information about %s is limited.", name)
	}

	statsBlock := "No detailed company information is available for this stock."
	if formatted := formatPromptStats(snap.Stats); formatted != "" {
		statsBlock = "KEY COMPANY FACTS:\n" + formatted
	}

	goals := "No specific financial goals have been specified."
	if len(persona.FinancialGoals) > 0 {
		goals = fmt.Sprintf("Their financial goals include: %s.", strings.Join(persona.FinancialGoals, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a financial advisor providing an educational explanation about %s (%s) to an investor.\n\n", name, snap.Symbol)
	b.WriteString("COMPANY INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Symbol: %s\n", snap.Symbol)
	fmt.Fprintf(&b, "- Description: %s\n\n", description)
	b.WriteString(statsBlock)
	b.WriteString("\n\nUSER PROFILE:\n")
	fmt.Fprintf(&b, "- Knowledge Level: %s (Options: beginner, intermediate, advanced)\n", persona.KnowledgeLevel)
	fmt.Fprintf(&b, "- Risk Tolerance: %s (Options: conservative, moderate, aggressive)\n", persona.RiskTolerance)
	fmt.Fprintf(&b, "- %s\n\n", goals)
	b.WriteString(`TASK:
Provide a clear, educational explanation of this company that is tailored to the user's knowledge level. Focus on what the company does and its basic business model rather than current stock movements.

Your response should include THREE distinct sections:

1. EXPLANATION: An educational description of the company that matches the user's knowledge level. For beginners, focus on what the company does and basic business concepts. For intermediate investors, provide context on the company's market position and business model. For advanced investors, include industry analysis and competitive positioning.

2. RISKS: A bullet-point list of 3-4 potential general risks specific to this type of company or industry, considering the user's risk tolerance.

3. ADVICE: One paragraph of educational guidance related to understanding this type of company, appropriate for someone with the user's profile.

FORMATTING INSTRUCTIONS:
- Use Markdown formatting in your response
- Use **bold text** (with double asterisks) for important concepts, terms, or key points
- Structure your response with clear headings and paragraphs
- For lists, use proper Markdown bullet points

Format your response as a structured JSON with these three keys: "explanation", "risks" (as an array), and "advice".
`)
	return b.String()
}

// formatPromptStats renders allow-listed, non-zero stats as "Key: value"
// lines. Market-cap-like values are shown in billions of dollars, ratio and
// yield metrics with a percent suffix, volume-like counts with thousands
// grouping.
func formatPromptStats(stats map[string]float64) string {
	if len(stats) == 0 {
		return ""
	}
	var lines []string
	for _, key := range promptStatOrder {
		value, ok := stats[key]
		if !ok || value == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", titleCaseKey(key), formatStatValue(key, value)))
	}
	return strings.Join(lines, "\n")
}

func formatStatValue(key string, value float64) string {
	d := decimal.NewFromFloat(value)
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "marketcap"):
		return fmt.Sprintf("$%s billion", d.Div(billion).StringFixed(2))
	case strings.Contains(lower, "ratio"), strings.Contains(lower, "yield"), strings.Contains(lower, "percent"):
		return d.StringFixed(2) + "%"
	case strings.Contains(lower, "volume"):
		return groupThousands(d)
	default:
		return d.String()
	}
}

// groupThousands renders the integer part of d with comma separators.
func groupThousands(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// titleCaseKey converts a camelCase metric name to Title Case for display,
// e.g. "marketCap" -> "Market Cap".
func titleCaseKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
