package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hotker/blog-collector-go/internal/config"
	"go.uber.org/zap"
)

var collectNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

type feedItem struct {
	title   string
	link    string
	pubDate time.Time
}

func rssServer(t *testing.T, items []feedItem) *httptest.Server {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>test feed</title>`)
	for _, item := range items {
		fmt.Fprintf(&b, "<item><title>%s</title><link>%s</link><description>body text</description>", item.title, item.link)
		if !item.pubDate.IsZero() {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>", item.pubDate.Format(time.RFC1123Z))
		}
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, b.String())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func brokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func feedSource(name, url string) config.Source {
	return config.Source{Name: name, Kind: config.SourceKindFeed, URL: url, Lang: "en", Limit: 10}
}

func newTestCollector(sources ...config.Source) *Collector {
	c := NewCollector(sources, zap.NewNop())
	c.now = func() time.Time { return collectNow }
	return c
}

func TestCollectAllAgeCutoffAndOrdering(t *testing.T) {
	srv := rssServer(t, []feedItem{
		{title: "Older", link: "https://x/older", pubDate: collectNow.Add(-50 * time.Hour)},
		{title: "Ancient", link: "https://x/ancient", pubDate: collectNow.Add(-16 * 24 * time.Hour)},
		{title: "Fresh", link: "https://x/fresh", pubDate: collectNow.Add(-2 * time.Hour)},
		{title: "Undated", link: "https://x/undated"},
	})

	c := newTestCollector(feedSource("test", srv.URL))
	articles, err := c.CollectAll(context.Background(), 72*time.Hour, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var titles []string
	for _, a := range articles {
		titles = append(titles, a.Title)
	}

	want := []string{"Undated", "Fresh", "Older"}
	if len(titles) != len(want) {
		t.Fatalf("expected %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, titles)
		}
	}

	// Undated items are stamped with the collection time.
	if !articles[0].PublishedAt.Equal(collectNow) {
		t.Fatalf("undated article not stamped with collection time: %v", articles[0].PublishedAt)
	}
}

func TestCollectAllCapsCandidates(t *testing.T) {
	srv := rssServer(t, []feedItem{
		{title: "A", link: "https://x/a", pubDate: collectNow.Add(-1 * time.Hour)},
		{title: "B", link: "https://x/b", pubDate: collectNow.Add(-2 * time.Hour)},
		{title: "C", link: "https://x/c", pubDate: collectNow.Add(-3 * time.Hour)},
	})

	c := newTestCollector(feedSource("test", srv.URL))
	articles, err := c.CollectAll(context.Background(), 72*time.Hour, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected cap of 2 candidates, got %d", len(articles))
	}
	if articles[0].Title != "A" || articles[1].Title != "B" {
		t.Fatalf("cap must keep the newest candidates, got %v", articles)
	}
}

func TestCollectAllAllSourcesFailed(t *testing.T) {
	srv := brokenServer(t)

	c := newTestCollector(feedSource("bad", srv.URL))
	if _, err := c.CollectAll(context.Background(), 72*time.Hour, 10); err == nil {
		t.Fatal("expected error when every source fails")
	}
}

func TestCollectAllPartialFailureSucceeds(t *testing.T) {
	good := rssServer(t, []feedItem{
		{title: "A", link: "https://x/a", pubDate: collectNow.Add(-1 * time.Hour)},
	})
	bad := brokenServer(t)

	c := newTestCollector(feedSource("good", good.URL), feedSource("bad", bad.URL))
	articles, err := c.CollectAll(context.Background(), 72*time.Hour, 10)
	if err != nil {
		t.Fatalf("one healthy source must carry the run: %v", err)
	}

	if len(articles) != 1 || articles[0].Title != "A" {
		t.Fatalf("expected the healthy source's article, got %v", articles)
	}
}

func TestCollectAllNoSourcesConfigured(t *testing.T) {
	c := newTestCollector()
	if _, err := c.CollectAll(context.Background(), 72*time.Hour, 10); err == nil {
		t.Fatal("expected error with no sources")
	}
}
