package stockmentor

import "strings"

// resolvePersonalization merges a stored profile with request-level
// preference overrides into a single personalization context. The merge is
// field by field: a non-empty override wins, then the stored value, then the
// documented default. It is total — absent or invalid inputs resolve to
// defaults and it never fails.
func resolvePersonalization(stored *UserProfile, prefs *ExplainPreferences) PersonalizationContext {
	ctx := PersonalizationContext{
		KnowledgeLevel: DefaultKnowledgeLevel,
		RiskTolerance:  DefaultRiskTolerance,
		FinancialGoals: []string{},
	}

	if stored != nil {
		if level := normalizeChoice(stored.KnowledgeLevel, KnowledgeLevels); level != "" {
			ctx.KnowledgeLevel = level
		}
		if tolerance := normalizeChoice(stored.RiskTolerance, RiskTolerances); tolerance != "" {
			ctx.RiskTolerance = tolerance
		}
		for _, goal := range stored.FinancialGoals {
			if trimmed := strings.TrimSpace(goal); trimmed != "" {
				ctx.FinancialGoals = append(ctx.FinancialGoals, trimmed)
			}
		}
	}

	if prefs != nil {
		if level := normalizeChoice(prefs.ExperienceLevel, KnowledgeLevels); level != "" {
			ctx.KnowledgeLevel = level
		}
		if tolerance := normalizeChoice(prefs.RiskTolerance, RiskTolerances); tolerance != "" {
			ctx.RiskTolerance = tolerance
		}
	}

	return ctx
}

// normalizeChoice lowercases and validates a value against an allowed set,
// returning "" when the value is absent or not in the set.
func normalizeChoice(value string, allowed []string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if value == candidate {
			return value
		}
	}
	return ""
}
