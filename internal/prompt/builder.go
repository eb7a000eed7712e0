package prompt

import (
	"fmt"
	"strings"

	"github.com/hotker/blog-collector-go/internal/domain"
)

// System directives paired with the user prompts below.
const (
	TriageSystemPrompt    = "You are an Editor-in-Chief. Output JSON only."
	CritiqueSystemPrompt  = "You are an Analyst. Output JSON only."
	CoverSystemPrompt     = "You are an art director for a tech blog. Output JSON only."
	synthesisSystemFormat = "You are %s. You output ONLY valid JSON."
)

// TriagePromptVars holds variables for the persona triage prompt.
type TriagePromptVars struct {
	Title    string
	Excerpt  string
	Personas []*domain.Persona
}

// BuildTriagePrompt builds the prompt that asks the model to pick the best
// editorial persona for an article. The registry supplies the menu; the
// decision itself is fully delegated to the model.
func BuildTriagePrompt(vars TriagePromptVars) string {
	var menu strings.Builder
	var ids []string
	for i, p := range vars.Personas {
		fmt.Fprintf(&menu, "%d. '%s': %s Leans toward topics like: %s.\n",
			i+1, p.ID, p.Description, strings.Join(p.Triggers, ", "))
		ids = append(ids, "\""+p.ID+"\"")
	}

	return fmt.Sprintf(`Analyze the following tech article and select the most suitable editorial persona to rewrite it.

Article Title: %s
Article Excerpt: %s

Personas:
%s
Return ONLY a JSON object: {"persona": %s, "reason": "short explanation"}`,
		vars.Title,
		vars.Excerpt,
		menu.String(),
		strings.Join(ids, " | "),
	)
}

// CritiquePromptVars holds variables for the critique prompt.
type CritiquePromptVars struct {
	Title         string
	Excerpt       string
	PersonaName   string
	PersonaPrompt string
	// Strict is set on the single re-extraction attempt after a response
	// that did not parse into enough discrete statements.
	Strict bool
}

// BuildCritiquePrompt builds the prompt that asks for 3-5 analytical angles
// from the selected persona's perspective.
func BuildCritiquePrompt(vars CritiquePromptVars) string {
	extra := ""
	if vars.Strict {
		extra = `
STRICT FORMAT: respond with nothing but the JSON object. The "insights" array MUST contain between 3 and 5 plain strings, one complete sentence each, no markdown, no numbering inside the strings.`
	}

	return fmt.Sprintf(`Read this article and identify 3 to 5 critical angles or deep insights to explore.

Article Title: %s
Article Content: %s

Your Persona: %s
%s

Task: Provide 3 to 5 short, sharp insights that add depth to this story.
Focus on what is NOT said in the text.

Return JSON: {"insights": ["insight 1", "insight 2", "insight 3"]}%s`,
		vars.Title,
		vars.Excerpt,
		vars.PersonaName,
		vars.PersonaPrompt,
		extra,
	)
}

// SynthesisPromptVars holds variables for the final rewrite prompt.
type SynthesisPromptVars struct {
	Title          string
	Content        string
	SourceName     string
	SourceURL      string
	Persona        *domain.Persona
	Critique       []string
	TargetLanguage string
}

// SynthesisSystemPrompt returns the system directive for the rewrite call.
func SynthesisSystemPrompt(persona *domain.Persona) string {
	return fmt.Sprintf(synthesisSystemFormat, persona.Name)
}

// BuildSynthesisPrompt builds the rewrite prompt. Translation into the target
// language and the persona rewrite are instructed as a single pass, never as
// two separate steps.
func BuildSynthesisPrompt(vars SynthesisPromptVars) string {
	critiqueSection := ""
	if len(vars.Critique) > 0 {
		var b strings.Builder
		b.WriteString("\nCritical Insights to Incorporate:\n")
		for _, insight := range vars.Critique {
			b.WriteString("- " + insight + "\n")
		}
		critiqueSection = b.String()
	}

	return fmt.Sprintf(`You are a professional tech blogger. Based on the source article below, write a brand-new blog post in the target language "%s".

[Current Persona]: %s (%s)
Stay strictly in this persona's voice and focus!
%s

[Source Article]
Title: %s
Source: %s
Link: %s
Content:
%s
%s
[Writing Requirements]
1. Rewrite deeply in "%s". Translating and rewriting are ONE pass: never produce a plain translation of the source.
2. Commit fully to the persona's unique perspective and tone.
3. If "Critical Insights" are given, weave at least two of them naturally into the analysis.
4. Clear structure: a compelling title, a distinctive opening angle, core analysis, conclusion and outlook.
5. Length: 1000-2000 words.

Respond strictly with the following JSON and nothing else:
{
    "title": "title in the target language, matching the persona's style",
    "summary": "one-sentence summary (max 50 characters)",
    "tags": ["tag1", "tag2", "tag3"],
    "categories": ["AI"],
    "content": "article body (Markdown, with subheadings and paragraphs)"
}`,
		vars.TargetLanguage,
		vars.Persona.Name,
		vars.Persona.Description,
		vars.Persona.SystemPrompt,
		vars.Title,
		vars.SourceName,
		vars.SourceURL,
		vars.Content,
		critiqueSection,
		vars.TargetLanguage,
	)
}

// CoverPromptVars holds variables for the cover keyword analysis prompt.
type CoverPromptVars struct {
	Title   string
	Tags    []string
	Summary string
}

// BuildCoverAnalysisPrompt builds the prompt that extracts an image keyword
// phrase and a style tag from article metadata.
func BuildCoverAnalysisPrompt(vars CoverPromptVars) string {
	summary := vars.Summary
	if summary == "" {
		summary = "none"
	}

	return fmt.Sprintf(`Analyze the article metadata below and extract keywords plus a recommended cover image style.

Title: %s
Tags: %s
Summary: %s

Return JSON:
{
    "keywords": "3-5 English keywords, comma separated",
    "style": "one of: futuristic tech, digital art, minimalist illustration, abstract geometric, cyberpunk, clean modern"
}

Return ONLY the JSON.`,
		vars.Title,
		strings.Join(vars.Tags, ", "),
		summary,
	)
}
