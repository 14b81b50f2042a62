package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/david-king/TrendRadar/internal/normalize"
	"github.com/mmcdole/gofeed"
)

// rssSource fetches an RSS/Atom feed.
type rssSource struct {
	base
	parser *gofeed.Parser
}

func newRSSSource(cfg Config, norm *normalize.Normalizer) *rssSource {
	return &rssSource{
		base:   newBase(cfg, norm),
		parser: gofeed.NewParser(),
	}
}

func (s *rssSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue
		}
		// Feeds without a parseable published time keep ts 0 (epoch
		// start) so downstream ranking treats them as undated, unlike
		// REST/HTML which fall back to fetch time.
		var ts int64
		if entry.PublishedParsed != nil {
			ts = entry.PublishedParsed.Unix()
		}
		if item, ok := s.mkItem(entry.Title, entry.Link, ts, nil); ok {
			items = append(items, item)
		}
	}
	return items, nil
}
