package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/david-king/TrendRadar/internal/extract"
)

// restSource fetches a paginated/list REST endpoint and extracts items
// through configured path expressions.
type restSource struct {
	base
}

func (s *restSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	method := s.cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	endpoint := s.cfg.Endpoint
	if len(s.cfg.Params) > 0 {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("bad endpoint %q: %w", endpoint, err)
		}
		q := u.Query()
		for k, v := range s.cfg.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		endpoint = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range s.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// A malformed or unmatched list path yields an empty fetch, not an
	// error: the endpoint answered, it just had nothing for us.
	rows := extract.List(body, s.cfg.Extract.List)

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		title := extract.String(row, s.cfg.Extract.Title, "")
		link := extract.String(row, s.cfg.Extract.URL, "")
		if title == "" || link == "" {
			continue
		}
		ts, _ := extract.Value(row, s.cfg.Extract.TS)
		rank, _ := extract.Value(row, s.cfg.Extract.Rank)
		if item, ok := s.mkItem(title, link, ts, rank); ok {
			items = append(items, item)
		}
	}
	return items, nil
}
