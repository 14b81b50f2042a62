package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/david-king/TrendRadar/internal/logging"
	"github.com/david-king/TrendRadar/internal/normalize"
	"github.com/david-king/TrendRadar/internal/source"
)

const isolationFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Feed</title>
<item><title>Entry one</title><link>https://e.com/1</link></item>
<item><title>Entry two</title><link>https://e.com/2</link></item>
</channel></rss>`

// One REST source returns 500, one RSS feed is healthy with two
// entries, one HTML page has zero matching nodes. The run must complete
// with exactly the two RSS items and exactly one logged failure.
func TestAllIsolatesFailures(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, isolationFeed)
	}))
	defer feed.Close()

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>no headlines</p></body></html>`)
	}))
	defer page.Close()

	var buf bytes.Buffer
	logging.Init(&buf)

	cfgs := []source.Config{
		{Key: "broken", Name: "Broken", Type: "rest", Endpoint: failing.URL,
			Extract: source.ExtractRules{List: "list", Title: "title", URL: "url"}},
		{Key: "feed", Name: "Feed", Type: "rss", Endpoint: feed.URL},
		{Key: "page", Name: "Page", Type: "html", Endpoint: page.URL,
			HTML: source.HTMLRules{Item: "a.headline"}},
	}

	items := All(context.Background(), cfgs, normalize.New(nil))

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Entry one" || items[1].Title != "Entry two" {
		t.Errorf("items = %+v", items)
	}
	for _, it := range items {
		if it.SourceKey != "feed" {
			t.Errorf("item source key = %q, want %q", it.SourceKey, "feed")
		}
	}

	logged := buf.String()
	if got := strings.Count(logged, "custom source fetch failed"); got != 1 {
		t.Errorf("logged %d fetch failures, want 1:\n%s", got, logged)
	}
	if !strings.Contains(logged, "broken") {
		t.Errorf("failure log should name the source key:\n%s", logged)
	}
}

func TestAllSkipsDisabledAndUnknown(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, isolationFeed)
	}))
	defer feed.Close()

	disabled := false
	cfgs := []source.Config{
		{Key: "off", Type: "rss", Endpoint: feed.URL, Enabled: &disabled},
		{Key: "weird", Type: "graphql", Endpoint: feed.URL},
		{Key: "feed", Type: "rss", Endpoint: feed.URL},
	}

	items := All(context.Background(), cfgs, normalize.New(nil))
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.SourceKey != "feed" {
			t.Errorf("item from unexpected source %q", it.SourceKey)
		}
	}
}

func TestAllEmptyConfig(t *testing.T) {
	items := All(context.Background(), nil, normalize.New(nil))
	if items == nil {
		t.Fatal("All should return an empty slice, not nil")
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

// Output follows config order even when a slow source finishes last.
func TestAllPreservesConfigOrder(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>s</title>
			<item><title>Slow entry</title><link>https://e.com/slow</link></item>
			</channel></rss>`)
	}))
	defer slow.Close()

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>f</title>
			<item><title>Fast entry</title><link>https://e.com/fast</link></item>
			</channel></rss>`)
	}))
	defer fast.Close()

	cfgs := []source.Config{
		// rpm gate delays the first source's single request slightly
		// relative to the second; order must still hold.
		{Key: "a", Type: "rss", Endpoint: slow.URL},
		{Key: "b", Type: "rss", Endpoint: fast.URL},
	}

	for i := 0; i < 3; i++ {
		items := All(context.Background(), cfgs, normalize.New(nil))
		if len(items) != 2 {
			t.Fatalf("got %d items, want 2", len(items))
		}
		if items[0].Title != "Slow entry" || items[1].Title != "Fast entry" {
			t.Errorf("order not preserved: %q, %q", items[0].Title, items[1].Title)
		}
	}
}
