// Package source defines the canonical item record and the
// protocol-specific adapters (REST, RSS, HTML) that produce it.
package source

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/david-king/TrendRadar/internal/normalize"
	"github.com/david-king/TrendRadar/internal/ratelimit"
)

// requestTimeout bounds each network call. Exceeding it fails that one
// source's fetch, never the run.
const requestTimeout = 10 * time.Second

// userAgent identifies us to remote servers.
const userAgent = "TrendRadar/1.0 (+https://github.com/david-king/TrendRadar)"

// Item is the canonical record all adapters converge to. Field names in
// JSON form match the plain-record shape consumed downstream.
type Item struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	TS        int64  `json:"ts"`
	Rank      any    `json:"rank"`
	Source    string `json:"source"`
	SourceKey string `json:"source_key"`
	ID        string `json:"id"`
}

// ExtractRules maps path expressions to item fields for REST sources.
// List addresses the item sequence in the response body; the rest are
// resolved per element. TS and Rank are optional.
type ExtractRules struct {
	List  string `yaml:"list" json:"list"`
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
	TS    string `yaml:"ts,omitempty" json:"ts,omitempty"`
	Rank  string `yaml:"rank,omitempty" json:"rank,omitempty"`
}

// HTMLRules configures selector-based extraction for HTML sources.
// TitleAttr "text" (the default) takes the node's text content.
type HTMLRules struct {
	Item       string `yaml:"item" json:"item"`
	TitleAttr  string `yaml:"title_attr,omitempty" json:"title_attr,omitempty"`
	URLAttr    string `yaml:"url_attr,omitempty" json:"url_attr,omitempty"`
	TSSelector string `yaml:"ts_selector,omitempty" json:"ts_selector,omitempty"`
	TSAttr     string `yaml:"ts_attr,omitempty" json:"ts_attr,omitempty"`
}

// RateLimit holds the per-source request budget.
type RateLimit struct {
	RPM int `yaml:"rpm" json:"rpm"`
}

// Config is one source definition as supplied by the configuration
// subsystem.
type Config struct {
	Key       string            `yaml:"key" json:"key"`
	Name      string            `yaml:"name" json:"name"`
	Type      string            `yaml:"type" json:"type"`
	Endpoint  string            `yaml:"endpoint" json:"endpoint"`
	Method    string            `yaml:"method,omitempty" json:"method,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Params    map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	Extract   ExtractRules      `yaml:"extract,omitempty" json:"extract,omitempty"`
	HTML      HTMLRules         `yaml:"html,omitempty" json:"html,omitempty"`
	RateLimit RateLimit         `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"`
	Enabled   *bool             `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled reports whether the source should be fetched. Absent means
// enabled.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Source is the interface all adapters implement.
type Source interface {
	// Key returns the configuration key identifying this source.
	Key() string

	// Fetch retrieves and normalizes the source's current items.
	Fetch(ctx context.Context) ([]Item, error)
}

// New builds the adapter for cfg. ok is false for unrecognized types,
// which callers skip silently.
func New(cfg Config, norm *normalize.Normalizer) (Source, bool) {
	switch strings.ToLower(cfg.Type) {
	case "rest":
		return &restSource{base: newBase(cfg, norm)}, true
	case "rss":
		return newRSSSource(cfg, norm), true
	case "html":
		return &htmlSource{base: newBase(cfg, norm)}, true
	default:
		return nil, false
	}
}

// base carries the state shared by all adapters: identity, the rate
// gate, the normalizer, and an HTTP client with the per-request timeout.
type base struct {
	cfg     Config
	key     string
	name    string
	limiter *ratelimit.Limiter
	norm    *normalize.Normalizer
	client  *http.Client
}

func newBase(cfg Config, norm *normalize.Normalizer) base {
	key := cfg.Key
	if key == "" {
		key = cfg.Name
	}
	if key == "" {
		key = "custom"
	}
	name := cfg.Name
	if name == "" {
		name = key
	}
	return base{
		cfg:     cfg,
		key:     key,
		name:    name,
		limiter: ratelimit.New(cfg.RateLimit.RPM),
		norm:    norm,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (b *base) Key() string { return b.key }

// mkItem normalizes raw field values into an Item. ok is false when the
// title or URL is empty after normalization; such records are dropped.
func (b *base) mkItem(title, url string, ts, rank any) (Item, bool) {
	title = b.norm.Text(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return Item{}, false
	}
	return Item{
		Title:     title,
		URL:       url,
		TS:        normalize.ParseTimestamp(ts),
		Rank:      rank,
		Source:    b.name,
		SourceKey: b.key,
		ID:        normalize.MakeID(b.key, title, url),
	}, true
}
