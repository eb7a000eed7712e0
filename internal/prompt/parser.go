package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRegex  = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	bulletRegex = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
)

// ExtractJSON unmarshals a model response into dest, tolerating markdown
// code fences and surrounding prose. Models wrap JSON in fences often enough
// that strict parsing would throw away good answers.
func ExtractJSON(text string, dest any) error {
	candidates := make([]string, 0, 3)

	if match := fenceRegex.FindStringSubmatch(text); len(match) > 1 {
		candidates = append(candidates, match[1])
	}

	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	candidates = append(candidates, strings.TrimSpace(text))

	var lastErr error
	for _, candidate := range candidates {
		if err := json.Unmarshal([]byte(candidate), dest); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	return fmt.Errorf("no parsable JSON in response: %w", lastErr)
}

// TriageResponse is the expected shape of a triage answer.
type TriageResponse struct {
	Persona string `json:"persona"`
	Reason  string `json:"reason"`
}

// SynthesisResponse is the expected shape of a rewrite answer.
type SynthesisResponse struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
	Content    string   `json:"content"`
}

// CoverAnalysisResponse is the expected shape of a cover analysis answer.
type CoverAnalysisResponse struct {
	Keywords string `json:"keywords"`
	Style    string `json:"style"`
}

type insightsResponse struct {
	Insights []string `json:"insights"`
}

// ParseInsights extracts critique statements from a model response, best
// effort. It first tries the requested JSON shape, then falls back to bullet
// or numbered lines. The returned slice may hold fewer statements than asked
// for, including zero; the caller decides how much degradation to accept.
func ParseInsights(text string) []string {
	var resp insightsResponse
	if err := ExtractJSON(text, &resp); err == nil && len(resp.Insights) > 0 {
		return cleanInsights(resp.Insights)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !bulletRegex.MatchString(trimmed) {
			continue
		}
		lines = append(lines, bulletRegex.ReplaceAllString(trimmed, ""))
	}

	return cleanInsights(lines)
}

func cleanInsights(raw []string) []string {
	const maxInsights = 5

	out := make([]string, 0, len(raw))
	for _, insight := range raw {
		trimmed := strings.TrimSpace(insight)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
		if len(out) == maxInsights {
			break
		}
	}
	return out
}
