package prompt

import (
	"strings"
	"testing"

	"github.com/hotker/blog-collector-go/internal/domain"
)

func TestExtractJSONPlain(t *testing.T) {
	var resp TriageResponse
	if err := ExtractJSON(`{"persona": "geek", "reason": "code release"}`, &resp); err != nil {
		t.Fatalf("expected parse, got %v", err)
	}
	if resp.Persona != "geek" {
		t.Fatalf("expected geek, got %q", resp.Persona)
	}
}

func TestExtractJSONFromFence(t *testing.T) {
	text := "Here you go:\n```json\n{\"persona\": \"observer\", \"reason\": \"funding\"}\n```\nHope that helps."

	var resp TriageResponse
	if err := ExtractJSON(text, &resp); err != nil {
		t.Fatalf("expected parse, got %v", err)
	}
	if resp.Persona != "observer" {
		t.Fatalf("expected observer, got %q", resp.Persona)
	}
}

func TestExtractJSONFromSurroundingProse(t *testing.T) {
	text := `Sure! The answer is {"persona": "philosopher", "reason": "ethics"} as requested.`

	var resp TriageResponse
	if err := ExtractJSON(text, &resp); err != nil {
		t.Fatalf("expected parse, got %v", err)
	}
	if resp.Persona != "philosopher" {
		t.Fatalf("expected philosopher, got %q", resp.Persona)
	}
}

func TestExtractJSONFailure(t *testing.T) {
	var resp TriageResponse
	if err := ExtractJSON("I cannot answer that.", &resp); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestParseInsightsJSON(t *testing.T) {
	insights := ParseInsights(`{"insights": ["first angle", "second angle", "third angle"]}`)
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d: %v", len(insights), insights)
	}
	if insights[0] != "first angle" {
		t.Fatalf("unexpected first insight: %q", insights[0])
	}
}

func TestParseInsightsBulletFallback(t *testing.T) {
	text := `Here are my thoughts:
- the benchmark omits cold-start latency
* pricing pressure on incumbents
3. regulatory exposure in the EU
not a bullet line`

	insights := ParseInsights(text)
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d: %v", len(insights), insights)
	}
	if insights[2] != "regulatory exposure in the EU" {
		t.Fatalf("unexpected third insight: %q", insights[2])
	}
}

func TestParseInsightsCapsAtFive(t *testing.T) {
	insights := ParseInsights(`{"insights": ["a", "b", "c", "d", "e", "f", "g"]}`)
	if len(insights) != 5 {
		t.Fatalf("expected cap at 5, got %d", len(insights))
	}
}

func TestParseInsightsEmpty(t *testing.T) {
	if insights := ParseInsights("nothing useful here"); len(insights) != 0 {
		t.Fatalf("expected no insights, got %v", insights)
	}
}

func TestBuildTriagePromptListsPersonas(t *testing.T) {
	got := BuildTriagePrompt(TriagePromptVars{
		Title:   "New release",
		Excerpt: "some excerpt",
		Personas: []*domain.Persona{
			{ID: "geek", Description: "Technical expert.", Triggers: []string{"code", "benchmark"}},
			{ID: "observer", Description: "Market analyst.", Triggers: []string{"funding"}},
		},
	})

	for _, want := range []string{"'geek'", "'observer'", "benchmark", `"geek" | "observer"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildCritiquePromptStrictVariant(t *testing.T) {
	vars := CritiquePromptVars{Title: "t", Excerpt: "e", PersonaName: "The Geek", PersonaPrompt: "p"}

	loose := BuildCritiquePrompt(vars)
	vars.Strict = true
	strict := BuildCritiquePrompt(vars)

	if strings.Contains(loose, "STRICT FORMAT") {
		t.Fatal("loose prompt must not carry the strict directive")
	}
	if !strings.Contains(strict, "STRICT FORMAT") {
		t.Fatal("strict prompt must carry the strict directive")
	}
}

func TestBuildSynthesisPromptCarriesCritiqueAndLanguage(t *testing.T) {
	got := BuildSynthesisPrompt(SynthesisPromptVars{
		Title:          "Title",
		Content:        "Body",
		SourceName:     "HN",
		SourceURL:      "https://x/1",
		Persona:        &domain.Persona{Name: "The Geek", Description: "d", SystemPrompt: "sp"},
		Critique:       []string{"angle one", "angle two"},
		TargetLanguage: "zh",
	})

	for _, want := range []string{"angle one", "angle two", `"zh"`, "https://x/1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
