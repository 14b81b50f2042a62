// Package merge combines item streams, dropping duplicates by exact
// URL, normalized title, and optionally fuzzy title similarity.
package merge

import (
	"strings"

	"github.com/david-king/TrendRadar/internal/normalize"
	"github.com/david-king/TrendRadar/internal/source"
)

// Scorer rates the similarity of two strings on a 0-100 scale. It is an
// optional capability: with a nil Scorer the fuzzy pass is skipped even
// when requested.
type Scorer interface {
	TokenSetRatio(a, b string) int
}

// Engine deduplicates items. Construct once and share; it holds only
// read-only references.
type Engine struct {
	norm   *normalize.Normalizer
	scorer Scorer
}

// NewEngine creates an Engine. scorer may be nil.
func NewEngine(norm *normalize.Normalizer, scorer Scorer) *Engine {
	return &Engine{norm: norm, scorer: scorer}
}

// Dedup makes a single left-to-right pass over items, keeping the first
// occurrence of each logical item. Later duplicates are dropped
// outright; fields are never merged across duplicates. The fuzzy pass
// compares each candidate against every previously kept title key,
// which is quadratic in the worst case - fine for the hundreds of items
// a run produces.
func (e *Engine) Dedup(items []source.Item, fuzzyEnabled bool, threshold int) []source.Item {
	seenURL := make(map[string]struct{})
	seenTitle := make(map[string]struct{})
	out := make([]source.Item, 0, len(items))

	for _, it := range items {
		url := strings.TrimSpace(it.URL)
		if url != "" {
			if _, dup := seenURL[url]; dup {
				continue
			}
		}

		tkey := e.norm.Text(it.Title)
		if tkey != "" {
			if _, dup := seenTitle[tkey]; dup {
				continue
			}
		}

		if fuzzyEnabled && e.scorer != nil {
			dup := false
			for seen := range seenTitle {
				if e.scorer.TokenSetRatio(tkey, seen) >= threshold {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
		}

		if url != "" {
			seenURL[url] = struct{}{}
		}
		if tkey != "" {
			seenTitle[tkey] = struct{}{}
		}
		out = append(out, it)
	}
	return out
}

// Merge deduplicates the concatenation of base and custom items. Base
// items come first, so on conflicts the base stream wins.
func (e *Engine) Merge(base, custom []source.Item, fuzzyEnabled bool, threshold int) []source.Item {
	combined := make([]source.Item, 0, len(base)+len(custom))
	combined = append(combined, base...)
	combined = append(combined, custom...)
	return e.Dedup(combined, fuzzyEnabled, threshold)
}
