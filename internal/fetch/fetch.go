// Package fetch runs all configured source adapters concurrently and
// collects their items with per-source failure isolation.
package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/david-king/TrendRadar/internal/logging"
	"github.com/david-king/TrendRadar/internal/normalize"
	"github.com/david-king/TrendRadar/internal/source"
)

// maxConcurrentFetches limits parallel fetch operations.
const maxConcurrentFetches = 5

// All builds one adapter per enabled, recognized config, fetches them
// concurrently, and returns the concatenation of all successful results
// in config order. A failing source is logged with its key and
// contributes zero items; it never aborts siblings. With no usable
// sources the result is an empty, non-nil slice.
func All(ctx context.Context, cfgs []source.Config, norm *normalize.Normalizer) []source.Item {
	type slot struct {
		src source.Source
	}

	var srcs []slot
	for _, cfg := range cfgs {
		if !cfg.IsEnabled() {
			continue
		}
		s, ok := source.New(cfg, norm)
		if !ok {
			continue
		}
		srcs = append(srcs, slot{src: s})
	}

	// Results are slot-indexed so output order follows config order,
	// not completion order.
	results := make([][]source.Item, len(srcs))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, sl := range srcs {
		i, sl := i, sl
		g.Go(func() error {
			items, err := sl.src.Fetch(ctx)
			if err != nil {
				logging.Error("custom source fetch failed", "key", sl.src.Key(), "error", err)
				return nil // never fail the group - errors reported per-source
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]source.Item, 0)
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged
}
