package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source kinds
const (
	SourceKindFeed   = "feed"
	SourceKindScrape = "scrape"
	SourceKindReddit = "reddit"
)

// Source describes one place articles are collected from. Feed sources point
// at an RSS/Atom URL, scrape sources at an HTML listing page with a CSS
// selector, reddit sources at a subreddit listing.
type Source struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	URL       string `yaml:"url"`
	Lang      string `yaml:"lang"`
	Selector  string `yaml:"selector"`
	Subreddit string `yaml:"subreddit"`
	Sort      string `yaml:"sort"`
	Limit     int    `yaml:"limit"`
}

type Sources struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the sources YAML file. A missing file is not an error;
// it yields an empty source list so a run degrades to "no candidates".
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sources{}, nil
		}
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	for i := range sources.Sources {
		setSourceDefaults(&sources.Sources[i])
		if err := validateSource(&sources.Sources[i]); err != nil {
			return nil, fmt.Errorf("invalid source %q: %w", sources.Sources[i].Name, err)
		}
	}

	return &sources, nil
}

func setSourceDefaults(s *Source) {
	if s.Kind == "" {
		s.Kind = SourceKindFeed
	}
	if s.Lang == "" {
		s.Lang = "en"
	}
	if s.Limit == 0 {
		s.Limit = 5
	}
	if s.Kind == SourceKindScrape && s.Selector == "" {
		s.Selector = "article"
	}
	if s.Kind == SourceKindReddit && s.Sort == "" {
		s.Sort = "hot"
	}
}

func validateSource(s *Source) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch s.Kind {
	case SourceKindFeed, SourceKindScrape:
		if s.URL == "" {
			return fmt.Errorf("url is required for kind %q", s.Kind)
		}
	case SourceKindReddit:
		if s.Subreddit == "" {
			return fmt.Errorf("subreddit is required for kind reddit")
		}
	default:
		return fmt.Errorf("unknown kind %q", s.Kind)
	}
	return nil
}
