package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/domain"
	"go.uber.org/zap"
)

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	URL        string  `json:"url"`
	IsSelf     bool    `json:"is_self"`
	CreatedUTC float64 `json:"created_utc"`
}

// fetchReddit collects self-posts from a subreddit listing. Link posts with
// no body are skipped; there is nothing to rewrite in them.
func (c *Collector) fetchReddit(ctx context.Context, source config.Source) ([]domain.Article, error) {
	listingURL := fmt.Sprintf("https://www.reddit.com/r/%s/%s.json?limit=%d",
		source.Subreddit, source.Sort, source.Limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "BlogCollector/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	var articles []domain.Article
	for _, child := range listing.Data.Children {
		post := child.Data
		if !post.IsSelf || post.Selftext == "" {
			continue
		}

		articles = append(articles, domain.Article{
			Title:       coalesce(post.Title, "Untitled"),
			Content:     post.Selftext,
			URL:         "https://reddit.com" + post.Permalink,
			SourceName:  "Reddit r/" + source.Subreddit,
			Lang:        "en",
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0),
		})
	}

	c.logger.Debug("Reddit fetched",
		zap.String("subreddit", source.Subreddit),
		zap.Int("items", len(articles)))

	return articles, nil
}
