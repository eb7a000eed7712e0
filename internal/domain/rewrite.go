package domain

import (
	"strings"
	"unicode"
)

// RewriteResult is the orchestrator's output for a single article.
type RewriteResult struct {
	PersonaID  string
	Title      string
	Summary    string
	Tags       []string
	Categories []string
	Content    string
	// Critique statements that were handed to the synthesis step. Kept on
	// the result so a reviewer can audit which angles made it in.
	Critique  []string
	WordCount int
}

// CountWords counts words for mixed-script text: runs of latin letters and
// digits count as one word, each CJK rune counts as one.
func CountWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			count++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if !inWord {
				count++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return count
}

// Excerpt returns at most max runes of s, for prompt budgets and log lines.
func Excerpt(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max])
}
