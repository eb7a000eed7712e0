package collector

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/domain"
	pkgerrors "github.com/hotker/blog-collector-go/pkg/errors"
	"github.com/mmcdole/gofeed"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	fetchTimeout     = 15 * time.Second
	fetchParallelism = 4
)

// Collector aggregates normalized articles from all configured sources.
type Collector struct {
	sources    []config.Source
	httpClient *http.Client
	feedParser *gofeed.Parser
	logger     *zap.Logger

	now func() time.Time
}

func NewCollector(sources []config.Source, logger *zap.Logger) *Collector {
	return &Collector{
		sources: sources,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		feedParser: gofeed.NewParser(),
		logger:     logger,
		now:        time.Now,
	}
}

// CollectAll fetches every source, drops articles older than maxAge, sorts by
// recency and returns at most limit candidates. A single failing source only
// costs its own items; the call fails only when every source errored and
// nothing was collected.
func (c *Collector) CollectAll(ctx context.Context, maxAge time.Duration, limit int) ([]domain.Article, error) {
	if len(c.sources) == 0 {
		return nil, pkgerrors.NewCollectionError("no sources configured", "", nil)
	}

	type fetchResult struct {
		articles []domain.Article
		err      error
	}

	p := pool.NewWithResults[fetchResult]().WithMaxGoroutines(fetchParallelism)
	for _, source := range c.sources {
		source := source
		p.Go(func() fetchResult {
			articles, err := c.fetchSource(ctx, source)
			if err != nil {
				c.logger.Warn("Source fetch failed",
					zap.String("source", source.Name),
					zap.String("kind", source.Kind),
					zap.Error(err))
			}
			return fetchResult{articles: articles, err: err}
		})
	}

	var all []domain.Article
	failed := 0
	for _, res := range p.Wait() {
		if res.err != nil {
			failed++
			continue
		}
		all = append(all, res.articles...)
	}

	if len(all) == 0 && failed == len(c.sources) {
		return nil, pkgerrors.NewCollectionError("all sources failed", "", nil)
	}

	// Sources without item dates get the collection time, so undated items
	// count as fresh and sort first rather than falling through the cutoff.
	collectedAt := c.now()
	cutoff := collectedAt.Add(-maxAge)
	recent := make([]domain.Article, 0, len(all))
	for _, article := range all {
		if article.PublishedAt.IsZero() {
			article.PublishedAt = collectedAt
		}
		if article.PublishedAt.After(cutoff) {
			recent = append(recent, article)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PublishedAt.After(recent[j].PublishedAt)
	})

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	c.logger.Info("Collection finished",
		zap.Int("sources", len(c.sources)),
		zap.Int("failed_sources", failed),
		zap.Int("collected", len(all)),
		zap.Int("candidates", len(recent)))

	return recent, nil
}

func (c *Collector) fetchSource(ctx context.Context, source config.Source) ([]domain.Article, error) {
	switch source.Kind {
	case config.SourceKindFeed:
		return c.fetchFeed(ctx, source)
	case config.SourceKindScrape:
		return c.fetchScrape(ctx, source)
	case config.SourceKindReddit:
		return c.fetchReddit(ctx, source)
	default:
		return nil, pkgerrors.NewCollectionError("unknown source kind", source.Name, nil)
	}
}
