package ledger

import (
	"context"
	"time"
)

// Entry records one published article. The source URL is the key; an entry
// is written only after a successful publish.
type Entry struct {
	SourceURL   string    `json:"source_url"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Path        string    `json:"hexo_path"`
}

// Ledger is the durable set of already-published source URLs. It is the sole
// source of "already done" truth: entries are only ever appended, never
// removed by the pipeline.
type Ledger interface {
	Contains(ctx context.Context, url string) (bool, error)
	Add(ctx context.Context, entry Entry) error
	Len(ctx context.Context) (int, error)
}
