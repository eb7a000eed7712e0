package publisher

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/hotker/blog-collector-go/internal/domain"
	"gopkg.in/yaml.v3"
)

const maxSlugLen = 50

type posterBlock struct {
	Topic    *string `yaml:"topic"`
	Headline string  `yaml:"headline"`
	Caption  *string `yaml:"caption"`
	Color    *string `yaml:"color"`
}

type frontMatter struct {
	Title      string      `yaml:"title"`
	Date       string      `yaml:"date"`
	Tags       []string    `yaml:"tags"`
	Categories []string    `yaml:"categories"`
	Poster     posterBlock `yaml:"poster"`
	Cover      string      `yaml:"cover"`
	Banner     string      `yaml:"banner"`
}

// AssembleDocument renders a rewrite result into a publishable hexo post:
// YAML front matter, the rewritten body, a source-attribution footer and the
// persona byline.
func AssembleDocument(result *domain.RewriteResult, personaName, coverURL, sourceURL, postDir string, now time.Time) (*domain.Document, error) {
	tags := result.Tags
	if len(tags) == 0 {
		tags = []string{"AI"}
	}
	categories := result.Categories
	if len(categories) == 0 {
		categories = []string{"AI资讯"}
	}

	fm := frontMatter{
		Title:      result.Title,
		Date:       now.Format("2006-01-02 15:04:05"),
		Tags:       tags,
		Categories: categories,
		Poster: posterBlock{
			Headline: domain.Excerpt(result.Summary, 100),
		},
		Cover:  coverURL,
		Banner: coverURL,
	}

	fmBytes, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fmBytes)
	b.WriteString("---\n\n")
	b.WriteString(result.Content)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "> 本文基于 [%s](%s) 内容改编", sourceURL, sourceURL)
	if personaName != "" {
		fmt.Fprintf(&b, "\n\n> *本文由 AI 编辑部【%s】撰写*", personaName)
	}
	b.WriteString("\n")

	return &domain.Document{
		Path:          path.Join(postDir, Filename(result.Title, now)),
		Content:       b.String(),
		CommitMessage: "Auto: 新增文章 - " + result.Title,
		Title:         result.Title,
		SourceURL:     sourceURL,
	}, nil
}

// Filename builds the post filename: date prefix plus a slug capped at 50
// characters.
func Filename(title string, now time.Time) string {
	s := slug.Make(title)
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "-")
	}
	if s == "" {
		s = "untitled"
	}
	return fmt.Sprintf("%s-%s.md", now.Format("2006-01-02"), s)
}
