package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

const entriesPerFeed = 5

// RSSFetcher collects news article candidates from the configured
// syndication feeds. One failing feed never aborts the fetch; its
// contribution is simply empty for the tick.
type RSSFetcher struct {
	feeds      []tables.Feed
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
}

func NewRSSFetcher(feeds []tables.Feed, httpClient *http.Client, userAgent string) *RSSFetcher {
	return &RSSFetcher{
		feeds:      feeds,
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
	}
}

// Fetch returns up to maxArticles candidates across all feeds, newest
// first.
func (f *RSSFetcher) Fetch(ctx context.Context, maxArticles int) []content.Candidate {
	var candidates []content.Candidate

	for _, feed := range f.feeds {
		items, err := f.fetchFeed(ctx, feed)
		if err != nil {
			slog.Warn("Feed fetch failed, skipping source", "feed", feed.Name, "error", err)
			continue
		}
		candidates = append(candidates, items...)
		slog.Debug("Feed fetched", "feed", feed.Name, "articles", len(items))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Context.PublishedAt.After(candidates[j].Context.PublishedAt)
	})

	if maxArticles > 0 && len(candidates) > maxArticles {
		candidates = candidates[:maxArticles]
	}

	slog.Info("Articles fetched", "total", len(candidates))
	return candidates
}

func (f *RSSFetcher) fetchFeed(ctx context.Context, feed tables.Feed) ([]content.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return f.normalize(parsed, feed), nil
}

func (f *RSSFetcher) normalize(parsed *gofeed.Feed, feed tables.Feed) []content.Candidate {
	limit := len(parsed.Items)
	if limit > entriesPerFeed {
		limit = entriesPerFeed
	}

	candidates := make([]content.Candidate, 0, limit)
	for _, entry := range parsed.Items[:limit] {
		published := time.Time{}
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		}

		candidates = append(candidates, content.Candidate{
			Kind:      content.KindNewsArticle,
			Identity:  content.ArticleIdentity(entry.GUID, entry.Link),
			Text:      content.Normalize(entry.Title),
			Timestamp: time.Now(),
			Context: content.Context{
				Source:       feed.Name,
				SourceWeight: feed.Weight,
				Link:         entry.Link,
				Summary:      content.Normalize(entry.Description),
				PublishedAt:  published,
			},
		})
	}
	return candidates
}

// FetchDetail retrieves the linked article page and extracts its
// readable body. Failures are non-fatal; the caller falls back to the
// feed summary.
func (f *RSSFetcher) FetchDetail(ctx context.Context, link string, extractor *ContentExtractor) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	return extractor.Run(body)
}
