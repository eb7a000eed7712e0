package domain

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"latin words", "the quick brown fox", 4},
		{"han runes", "人工智能", 4},
		{"mixed scripts", "GPT 模型发布了", 6},
		{"punctuation ignored", "hello, world!", 2},
		{"digits count", "v2 release", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.text); got != tt.want {
				t.Fatalf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("  hello  ", 10); got != "hello" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
	if got := Excerpt("abcdefgh", 3); got != "abc" {
		t.Fatalf("expected rune truncation, got %q", got)
	}
	if got := Excerpt("人工智能模型", 2); got != "人工" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
