// Package report reshapes canonical items into the rank-aggregated
// per-source, per-title structure the report builder consumes.
package report

import (
	"strconv"
	"strings"

	"github.com/david-king/TrendRadar/internal/source"
)

// TitleEntry aggregates every occurrence of one title under one source.
type TitleEntry struct {
	Ranks     []int  `json:"ranks"`
	URL       string `json:"url"`
	MobileURL string `json:"mobileUrl"`
}

// Reshape groups items by namespaced source id ("custom:" + source key,
// disjoint from built-in platform ids) and by trimmed title. Items with
// an empty title are skipped. The first non-empty URL wins; each
// occurrence appends a rank, using the item's own rank when it is a
// non-negative integer-like value and sequential numbering otherwise.
func Reshape(items []source.Item) (map[string]map[string]*TitleEntry, map[string]string) {
	results := make(map[string]map[string]*TitleEntry)
	names := make(map[string]string)

	for _, it := range items {
		key := it.SourceKey
		if key == "" {
			key = "custom"
		}
		sid := "custom:" + key

		name := it.Source
		if name == "" {
			name = sid
		}
		names[sid] = name

		if _, ok := results[sid]; !ok {
			results[sid] = make(map[string]*TitleEntry)
		}

		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}

		entry, ok := results[sid][title]
		if !ok {
			entry = &TitleEntry{Ranks: []int{}, URL: it.URL}
			results[sid][title] = entry
		}
		if entry.URL == "" {
			entry.URL = it.URL
		}

		if r, ok := rankValue(it.Rank); ok {
			entry.Ranks = append(entry.Ranks, r)
		} else {
			entry.Ranks = append(entry.Ranks, len(entry.Ranks)+1)
		}
	}
	return results, names
}

// rankValue interprets a loosely typed rank as a non-negative integer.
// JSON numbers arrive as float64; digit-only strings are accepted,
// anything signed or fractional is not.
func rankValue(v any) (int, bool) {
	switch r := v.(type) {
	case int:
		return r, r >= 0
	case int64:
		return int(r), r >= 0
	case float64:
		if r < 0 || r != float64(int64(r)) {
			return 0, false
		}
		return int(r), true
	case string:
		if r == "" {
			return 0, false
		}
		for _, c := range r {
			if c < '0' || c > '9' {
				return 0, false
			}
		}
		n, err := strconv.Atoi(r)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
