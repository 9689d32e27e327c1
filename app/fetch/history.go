package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
)

const DefaultHistoryBaseURL = "https://api.wikimedia.org/feed/v1/wikipedia"

const birthsAndDeathsLimit = 5

// HistoryFetcher pulls "on this day" events from the Wikimedia feed
// API for the configured language edition.
type HistoryFetcher struct {
	BaseURL    string
	httpClient *http.Client
	language   string
	userAgent  string
	now        func() time.Time
}

func NewHistoryFetcher(httpClient *http.Client, language, userAgent string) *HistoryFetcher {
	return &HistoryFetcher{
		BaseURL:    DefaultHistoryBaseURL,
		httpClient: httpClient,
		language:   language,
		userAgent:  userAgent,
		now:        time.Now,
	}
}

type onThisDayResponse struct {
	Events []onThisDayEntry `json:"events"`
	Births []onThisDayEntry `json:"births"`
	Deaths []onThisDayEntry `json:"deaths"`
}

type onThisDayEntry struct {
	Year  int    `json:"year"`
	Text  string `json:"text"`
	Pages []struct {
		Title           string `json:"title"`
		NormalizedTitle string `json:"normalizedtitle"`
	} `json:"pages"`
}

// Fetch returns candidates for everything that happened on today's
// date: all events plus the first few births and deaths.
func (f *HistoryFetcher) Fetch(ctx context.Context) ([]content.Candidate, error) {
	today := f.now()
	url := fmt.Sprintf("%s/%s/onthisday/all/%d/%d", f.BaseURL, f.language, today.Month(), today.Day())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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

	var parsed onThisDayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var candidates []content.Candidate
	for _, entry := range parsed.Events {
		candidates = append(candidates, f.normalize("event", entry))
	}
	for i, entry := range parsed.Births {
		if i >= birthsAndDeathsLimit {
			break
		}
		candidates = append(candidates, f.normalize("birth", entry))
	}
	for i, entry := range parsed.Deaths {
		if i >= birthsAndDeathsLimit {
			break
		}
		candidates = append(candidates, f.normalize("death", entry))
	}

	slog.Info("Historical events fetched", "total", len(candidates), "month", int(today.Month()), "day", today.Day())
	return candidates, nil
}

func (f *HistoryFetcher) normalize(eventType string, entry onThisDayEntry) content.Candidate {
	text := content.Normalize(entry.Text)

	link := ""
	if len(entry.Pages) > 0 {
		title := entry.Pages[0].NormalizedTitle
		if title == "" {
			title = entry.Pages[0].Title
		}
		link = fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", f.language, title)
	}

	return content.Candidate{
		Kind:      content.KindHistoricalEvent,
		Identity:  content.EventIdentity(eventType, entry.Year, text),
		Text:      text,
		Timestamp: time.Now(),
		Context: content.Context{
			Year:      entry.Year,
			EventType: eventType,
			Link:      link,
		},
	}
}
