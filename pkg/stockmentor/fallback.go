package stockmentor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// fallbackExplanation produces a deterministic, profile-tailored explanation
// without any I/O. It is the availability guarantee of the explain pipeline:
// it succeeds for any well-formed snapshot and personalization context,
// including when optional stats are absent.
func fallbackExplanation(snap *StockSnapshot, persona PersonalizationContext) ExplanationResult {
	symbol := snap.Symbol
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		name = symbol + " Inc."
	}

	var explanation, advice string
	var risks []string

	switch persona.KnowledgeLevel {
	case "intermediate":
		explanation = intermediateExplanation(name, symbol, snap)
		risks = []string{
			"The company may face **increasing competition** in its primary markets.",
			"**Regulatory changes** could impact the business model and profitability.",
			"Changes in **consumer preferences** or **technology** could disrupt the industry.",
		}
		advice = fmt.Sprintf("For an intermediate investor with %s risk tolerance, analyze **%s's business model** and **competitive advantages**. Consider how well the company is positioned against competitors and what factors might affect its long-term growth.", persona.RiskTolerance, name)
	case "advanced":
		explanation = advancedExplanation(name, symbol, snap)
		risks = []string{
			"**Industry disruption** through technological innovation could impact the company's competitive position.",
			"The company's **debt structure** and **capital allocation strategy** merit close analysis.",
			"**Macro-economic factors** may impact growth in the sector broadly.",
		}
		advice = fmt.Sprintf("For an advanced investor with %s risk tolerance, consider examining **%s's financial statements** in detail, particularly focusing on **revenue growth trends**, **margin expansion opportunities**, and **return on invested capital** when evaluating the company.", persona.RiskTolerance, name)
	default: // beginner
		explanation = beginnerExplanation(name, symbol, snap)
		risks = []string{
			"All investments carry **risk**, and you could lose money investing in any stock, including this one.",
			fmt.Sprintf("**%s** might face competition that could affect its business performance.", name),
			"**Economic downturns** could negatively impact this company's growth.",
		}
		advice = fmt.Sprintf("As a beginner investor with %s risk tolerance, it's important to **understand what %s does as a business** before investing. Consider learning about the industry in which they operate and how they make money.", persona.RiskTolerance, name)
	}

	switch persona.RiskTolerance {
	case "conservative":
		risks = append(risks, "This company may have underlying **volatility** that conservative investors should examine closely.")
		advice += " Given your **conservative risk profile**, consider analyzing the stability of earnings and competitive moat before making an investment decision."
	case "aggressive":
		risks = append(risks, "Even for aggressive investors, understanding the company's **growth catalysts** remains important.")
		advice += " With your **aggressive risk profile**, you might be interested in evaluating the company's innovation pipeline and potential for disruptive growth."
	}

	return ExplanationResult{
		Explanation: explanation,
		Risks:       risks,
		Advice:      advice,
		Source:      StageFallback,
	}
}

func beginnerExplanation(name, symbol string, snap *StockSnapshot) string {
	description := strings.TrimSpace(snap.Description)
	if description == "" {
		description = fmt.Sprintf("No detailed description available for %s.", name)
	}
	return fmt.Sprintf(`**%s** (%s) is a publicly traded company. When you buy shares of %s, you're buying a small piece of ownership in the company.

%s

Companies like **%s** make money through their **business operations**, and as a shareholder, you may benefit from the company's success through stock price appreciation or dividends.`, name, symbol, symbol, description, name)
}

func intermediateExplanation(name, symbol string, snap *StockSnapshot) string {
	capSentence := "Market capitalization data is unavailable."
	if mc, ok := snap.Stats["marketCap"]; ok && mc != 0 {
		capSentence = fmt.Sprintf("The company has a **market capitalization** of $%s billion.", decimal.NewFromFloat(mc).Div(billion).StringFixed(2))
	}
	peSentence := "Valuation metrics are not currently available for this company."
	if pe, ok := snap.Stats["peRatio"]; ok && pe != 0 {
		peSentence = fmt.Sprintf("Its **P/E ratio** is %s, which is an important valuation metric to consider when analyzing the company.", decimal.NewFromFloat(pe).StringFixed(2))
	}
	description := strings.TrimSpace(snap.Description)
	parts := []string{
		fmt.Sprintf("**%s** (%s) is a publicly traded company competing within its **industry** for market share.", name, symbol),
		capSentence,
	}
	if description != "" {
		parts = append(parts, description)
	}
	parts = append(parts, peSentence)
	return strings.Join(parts, "\n\n")
}

func advancedExplanation(name, symbol string, snap *StockSnapshot) string {
	peClause := "unavailable P/E data"
	if pe, ok := snap.Stats["peRatio"]; ok && pe != 0 {
		peClause = fmt.Sprintf("a **P/E ratio** of %s", decimal.NewFromFloat(pe).StringFixed(2))
	}
	yieldClause := "no dividend yield"
	if dy, ok := snap.Stats["dividendYield"]; ok && dy != 0 {
		yieldClause = fmt.Sprintf("**dividend yield** of %s%%", decimal.NewFromFloat(dy).StringFixed(2))
	}
	description := strings.TrimSpace(snap.Description)
	parts := []string{
		fmt.Sprintf("**%s** (%s) is positioned in its sector with an established public-market track record.", name, symbol),
		fmt.Sprintf("The company's fundamentals show %s and %s.", peClause, yieldClause),
	}
	if description != "" {
		parts = append(parts, description)
	}
	parts = append(parts, fmt.Sprintf("When analyzing **%s**, consider its **market positioning**, **capital structure**, and **growth strategy** compared to industry peers.", name))
	return strings.Join(parts, "\n\n")
}
