package collector

import (
	"context"
	"fmt"

	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/domain"
	"go.uber.org/zap"
)

// fetchFeed collects articles from one RSS/Atom source.
func (c *Collector) fetchFeed(ctx context.Context, source config.Source) ([]domain.Article, error) {
	feed, err := c.feedParser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > source.Limit {
		items = items[:source.Limit]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		content := coalesce(item.Content, item.Description)
		article := domain.Article{
			Title:      coalesce(item.Title, "Untitled"),
			Content:    CleanHTML(content),
			URL:        item.Link,
			SourceName: source.Name,
			Lang:       source.Lang,
		}
		if item.PublishedParsed != nil {
			article.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			article.PublishedAt = *item.UpdatedParsed
		}

		articles = append(articles, article)
	}

	c.logger.Debug("Feed fetched",
		zap.String("source", source.Name),
		zap.Int("items", len(articles)))

	return articles, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
