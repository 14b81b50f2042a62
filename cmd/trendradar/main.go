// trendradar fetches all configured custom sources, deduplicates the
// combined items, and emits the rank-aggregated report structure as
// JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/david-king/TrendRadar/internal/config"
	"github.com/david-king/TrendRadar/internal/fetch"
	"github.com/david-king/TrendRadar/internal/logging"
	"github.com/david-king/TrendRadar/internal/merge"
	"github.com/david-king/TrendRadar/internal/normalize"
	"github.com/david-king/TrendRadar/internal/report"
	"github.com/david-king/TrendRadar/internal/similarity"
	"github.com/david-king/TrendRadar/internal/source"
)

func main() {
	dir := flag.String("dir", "", "source definition directory (default $TREND_CUSTOM_DIR or config/custom.d)")
	fuzzy := flag.Bool("fuzzy", false, "enable fuzzy title deduplication")
	threshold := flag.Int("threshold", 90, "fuzzy similarity threshold (0-100)")
	flag.Parse()

	logging.Init(nil)

	var conv normalize.Converter
	if cc, err := normalize.NewOpenCC(); err != nil {
		logging.Warn("script conversion unavailable", "error", err)
	} else {
		conv = cc
	}
	norm := normalize.New(conv)

	cfgs, errs := config.LoadDir(config.Dir(*dir))
	for _, err := range errs {
		logging.Warn("source definition skipped", "error", err)
	}
	logging.Info("custom sources loaded", "count", len(cfgs))

	items := fetch.All(context.Background(), cfgs, norm)
	logging.Info("fetch complete", "items", len(items))

	engine := merge.NewEngine(norm, similarity.TokenSet{})
	items = engine.Dedup(items, *fuzzy, *threshold)

	results, names := report.Reshape(items)

	out := struct {
		Items   []source.Item                            `json:"items"`
		Results map[string]map[string]*report.TitleEntry `json:"results"`
		Sources map[string]string                        `json:"sources"`
	}{items, results, names}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		logging.Error("failed to encode output", "error", err)
		os.Exit(1)
	}
}
