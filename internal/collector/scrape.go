package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/domain"
	"go.uber.org/zap"
)

const scrapeUserAgent = "Mozilla/5.0 (compatible; BlogCollector/1.0)"

var contentSelectors = []string{
	"article", ".article-content", ".post-content",
	".entry-content", ".content", "main",
}

const scrapeBodyFallbackLen = 5000

// fetchScrape collects articles from an HTML listing page. Each matched
// element yields a title and link; the full article body is fetched from the
// linked page afterwards.
func (c *Collector) fetchScrape(ctx context.Context, source config.Source) ([]domain.Article, error) {
	doc, err := c.fetchDocument(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	var articles []domain.Article
	doc.Find(source.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		titleElem := sel.Find("h1, h2, h3, .title, a").First()
		linkElem := sel.Find("a[href]").First()
		if titleElem.Length() == 0 || linkElem.Length() == 0 {
			return true
		}

		title := strings.TrimSpace(titleElem.Text())
		href, _ := linkElem.Attr("href")
		if title == "" || href == "" {
			return true
		}

		link, err := baseURL.Parse(href)
		if err != nil {
			return true
		}

		content, err := c.fetchArticleContent(ctx, link.String())
		if err != nil {
			c.logger.Warn("Failed to fetch article content",
				zap.String("source", source.Name),
				zap.String("url", link.String()),
				zap.Error(err))
			return true
		}

		articles = append(articles, domain.Article{
			Title:      title,
			Content:    content,
			URL:        link.String(),
			SourceName: source.Name,
			Lang:       source.Lang,
		})

		return len(articles) < source.Limit
	})

	c.logger.Debug("Scrape fetched",
		zap.String("source", source.Name),
		zap.Int("items", len(articles)))

	return articles, nil
}

// fetchArticleContent extracts the main text of a linked article page, trying
// the common content containers before falling back to a trimmed body.
func (c *Collector) fetchArticleContent(ctx context.Context, pageURL string) (string, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return "", err
	}

	for _, selector := range contentSelectors {
		if elem := doc.Find(selector).First(); elem.Length() > 0 {
			if html, err := goquery.OuterHtml(elem); err == nil {
				if text := CleanHTML(html); text != "" {
					return text, nil
				}
			}
		}
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		if html, err := goquery.OuterHtml(body); err == nil {
			return domain.Excerpt(CleanHTML(html), scrapeBodyFallbackLen), nil
		}
	}

	return "", fmt.Errorf("no extractable content")
}

func (c *Collector) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
