package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestLoadSourcesMissingFileYieldsEmptyList(t *testing.T) {
	sources, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if len(sources.Sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources.Sources))
	}
}

func TestLoadSourcesAppliesDefaults(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: hn
    url: https://news.ycombinator.com/rss
  - name: blog
    kind: scrape
    url: https://example.com/blog
  - name: r-ml
    kind: reddit
    subreddit: MachineLearning
`)

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources.Sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources.Sources))
	}

	feed := sources.Sources[0]
	if feed.Kind != SourceKindFeed || feed.Lang != "en" || feed.Limit != 5 {
		t.Fatalf("feed defaults not applied: %+v", feed)
	}

	scrape := sources.Sources[1]
	if scrape.Selector != "article" {
		t.Fatalf("expected default scrape selector, got %q", scrape.Selector)
	}

	reddit := sources.Sources[2]
	if reddit.Sort != "hot" {
		t.Fatalf("expected default reddit sort, got %q", reddit.Sort)
	}
}

func TestLoadSourcesValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "sources:\n  - url: https://x\n"},
		{"feed without url", "sources:\n  - name: a\n    kind: feed\n"},
		{"reddit without subreddit", "sources:\n  - name: a\n    kind: reddit\n"},
		{"unknown kind", "sources:\n  - name: a\n    kind: sitemap\n    url: https://x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSources(writeSourcesFile(t, tt.yaml)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadSourcesMalformedYAML(t *testing.T) {
	if _, err := LoadSources(writeSourcesFile(t, "sources: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
