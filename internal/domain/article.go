package domain

import "time"

// Article is a raw item collected from a source. Immutable once collected;
// the pipeline driver owns it for the duration of one run.
type Article struct {
	Title       string
	Content     string
	URL         string
	SourceName  string
	Lang        string
	PublishedAt time.Time
}

// ArticleState tracks an article through the editorial pipeline.
type ArticleState string

const (
	StateIngested    ArticleState = "ingested"
	StateTriaged     ArticleState = "triaged"
	StateCritiqued   ArticleState = "critiqued"
	StateSynthesized ArticleState = "synthesized"
	StateDone        ArticleState = "done"
	StateSkipped     ArticleState = "skipped"
)

// Document is the assembled, publishable markdown file.
type Document struct {
	Path          string
	Content       string
	CommitMessage string
	Title         string
	SourceURL     string
}
