package stockmentor

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Placeholders substituted for individually unrecoverable fields. The parser
// never aborts the overall result.
const (
	placeholderExplanation = "No explanation provided."
	placeholderRisk        = "No specific risks identified."
	placeholderAdvice      = "No advice provided."
)

var reRiskItemSplit = regexp.MustCompile(`\n\s*-|\n\s*\d+\.|\n\s*\*`)

// parseGeneratedExplanation extracts a structured explanation from free-form
// generated text. Generated output is not guaranteed to be well formed, so
// the strategies run in priority order and the result is always structurally
// complete:
//
//  1. decode the first {...} span as JSON, accepted only when all three
//     fields come back non-empty
//  2. slice the text between EXPLANATION / RISKS / ADVICE section markers
//  3. substitute a fixed placeholder for any field still missing
func parseGeneratedExplanation(raw string) ExplanationResult {
	if result, ok := parseStructuredJSON(raw); ok {
		return result
	}
	return parseSectionHeadings(raw)
}

// parseStructuredJSON attempts the JSON-first strategy: the first balanced
// {...} span is decoded and accepted only if explanation, risks, and advice
// are all present and non-empty. A bare scalar risks value is wrapped into a
// single-element list.
func parseStructuredJSON(raw string) (ExplanationResult, bool) {
	span := firstJSONSpan(raw)
	if span == "" || !gjson.Valid(span) {
		return ExplanationResult{}, false
	}

	explanation := strings.TrimSpace(gjson.Get(span, "explanation").String())
	advice := strings.TrimSpace(gjson.Get(span, "advice").String())
	risks := extractRisks(gjson.Get(span, "risks"))
	if explanation == "" || advice == "" || len(risks) == 0 {
		return ExplanationResult{}, false
	}
	return ExplanationResult{
		Explanation: explanation,
		Risks:       risks,
		Advice:      advice,
		Source:      StageStructuredJSON,
	}, true
}

func extractRisks(value gjson.Result) []string {
	var risks []string
	if value.IsArray() {
		for _, item := range value.Array() {
			if trimmed := strings.TrimSpace(item.String()); trimmed != "" {
				risks = append(risks, trimmed)
			}
		}
		return risks
	}
	if trimmed := strings.TrimSpace(value.String()); trimmed != "" {
		risks = append(risks, trimmed)
	}
	return risks
}

// firstJSONSpan returns the substring from the first "{" to the last "}",
// with any surrounding Markdown code fence stripped.
func firstJSONSpan(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		lines := strings.Split(trimmed, "\n")
		if len(lines) >= 2 {
			lines = lines[1:]
			if strings.TrimSpace(lines[len(lines)-1]) == "```" {
				lines = lines[:len(lines)-1]
			}
			trimmed = strings.Join(lines, "\n")
		}
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return ""
	}
	return trimmed[start : end+1]
}

// parseSectionHeadings slices the text between the EXPLANATION, RISKS, and
// ADVICE markers, which must appear in that order (case-insensitive). Fields
// that cannot be recovered get their placeholder.
func parseSectionHeadings(raw string) ExplanationResult {
	lower := strings.ToLower(raw)

	expIdx := strings.Index(lower, "explanation")
	risksIdx := -1
	if expIdx >= 0 {
		if rel := strings.Index(lower[expIdx:], "risks"); rel > 0 {
			risksIdx = expIdx + rel
		}
	} else {
		risksIdx = strings.Index(lower, "risks")
	}
	adviceIdx := -1
	if risksIdx >= 0 {
		if rel := strings.Index(lower[risksIdx:], "advice"); rel > 0 {
			adviceIdx = risksIdx + rel
		}
	} else {
		adviceIdx = strings.Index(lower, "advice")
	}

	explanation := ""
	if expIdx >= 0 {
		end := len(raw)
		if risksIdx > expIdx {
			end = risksIdx
		}
		explanation = trimSectionBody(raw[expIdx+len("explanation") : end])
	}

	var risks []string
	if risksIdx >= 0 {
		end := len(raw)
		if adviceIdx > risksIdx {
			end = adviceIdx
		}
		risks = splitRiskItems(raw[risksIdx+len("risks") : end])
	}

	advice := ""
	if adviceIdx >= 0 {
		advice = trimSectionBody(raw[adviceIdx+len("advice"):])
	}

	result := ExplanationResult{
		Explanation: explanation,
		Risks:       risks,
		Advice:      advice,
		Source:      StageHeadingExtracted,
	}
	if explanation == "" && len(risks) == 0 && advice == "" {
		result.Source = StagePlaceholder
	}
	if result.Explanation == "" {
		result.Explanation = placeholderExplanation
	}
	if len(result.Risks) == 0 {
		result.Risks = []string{placeholderRisk}
	}
	if result.Advice == "" {
		result.Advice = placeholderAdvice
	}
	return result
}

// splitRiskItems splits a risks section on list-item delimiters (hyphen,
// numbered, or asterisk bullets) and drops empties.
func splitRiskItems(section string) []string {
	var items []string
	for _, part := range reRiskItemSplit.Split(section, -1) {
		if trimmed := trimSectionBody(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// trimSectionBody strips the heading punctuation and emphasis markers left
// over when a section is sliced out of the surrounding text. Only the leading
// edge carries heading residue; trailing markers belong to the body (a
// sentence may legitimately end in Markdown bold).
func trimSectionBody(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), ":*#"))
}
