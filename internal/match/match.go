// Package match implements the keyword match-decision predicate used to
// classify titles. Advanced matching layers normalization, optional
// regex, and optional fuzzy similarity over the basic containment
// check, degrading gracefully when a capability is absent.
package match

import (
	"os"
	"regexp"
	"strings"

	"github.com/david-king/TrendRadar/internal/normalize"
)

// NormalizeConfig controls the normalization applied to titles and
// keywords before matching. Both steps default to on.
type NormalizeConfig struct {
	OpenCC *bool `yaml:"opencc" json:"opencc"`
	NFKC   *bool `yaml:"nfkc" json:"nfkc"`
}

func (c NormalizeConfig) openccOn() bool { return c.OpenCC == nil || *c.OpenCC }
func (c NormalizeConfig) nfkcOn() bool   { return c.NFKC == nil || *c.NFKC }

// FuzzyConfig controls the fuzzy any-word pass.
type FuzzyConfig struct {
	Enabled   bool `yaml:"enabled" json:"enabled"`
	Threshold int  `yaml:"threshold" json:"threshold"`
}

// Config is the match section of the main configuration.
type Config struct {
	Disabled     bool            `yaml:"-" json:"-"`
	Normalize    NormalizeConfig `yaml:"normalize" json:"normalize"`
	RegexEnabled bool            `yaml:"regex_enabled" json:"regex_enabled"`
	Fuzzy        FuzzyConfig     `yaml:"fuzzy" json:"fuzzy"`
}

// defaultFuzzyThreshold applies when the fuzzy pass is enabled without
// an explicit threshold.
const defaultFuzzyThreshold = 90

// envSwitch is the environment variable that force-disables advanced
// matching.
const envSwitch = "ADV_MATCH"

// DisabledFromEnv reports whether the environment turns advanced
// matching off entirely.
func DisabledFromEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envSwitch))) {
	case "disable", "disabled", "off", "false", "0", "none":
		return true
	}
	return false
}

// Scorer rates string similarity on a 0-100 scale; nil disables the
// fuzzy pass.
type Scorer interface {
	TokenSetRatio(a, b string) int
}

// Matcher evaluates the match predicate. Both capabilities may be nil.
type Matcher struct {
	conv   normalize.Converter
	scorer Scorer
}

// New creates a Matcher with the given optional capabilities.
func New(conv normalize.Converter, scorer Scorer) *Matcher {
	return &Matcher{conv: conv, scorer: scorer}
}

// Decide reports whether title matches: all mustWords present, no
// notWords present, and at least one anyWord matched (by containment,
// regex, or fuzzy similarity depending on cfg). With cfg.Disabled the
// basic containment check runs on raw text.
func (m *Matcher) Decide(title string, anyWords, mustWords, notWords []string, cfg Config) bool {
	if cfg.Disabled {
		return Basic(title, anyWords, mustWords, notWords)
	}

	t := m.normWord(title, cfg)

	for _, w := range notWords {
		if nw := m.normWord(w, cfg); nw != "" && strings.Contains(t, nw) {
			return false
		}
	}

	for _, w := range mustWords {
		nw := m.normWord(w, cfg)
		if nw == "" || !strings.Contains(t, nw) {
			return false
		}
	}

	if cfg.RegexEnabled {
		for _, w := range anyWords {
			re, err := regexp.Compile(w)
			if err != nil {
				continue // bad pattern, keyword treated as unmatched
			}
			if re.MatchString(t) {
				return true
			}
		}
	}

	if cfg.Fuzzy.Enabled && m.scorer != nil {
		thr := cfg.Fuzzy.Threshold
		if thr <= 0 {
			thr = defaultFuzzyThreshold
		}
		for _, w := range anyWords {
			if nw := m.normWord(w, cfg); nw != "" && m.scorer.TokenSetRatio(t, nw) >= thr {
				return true
			}
		}
	}

	for _, w := range anyWords {
		if nw := m.normWord(w, cfg); nw != "" && strings.Contains(t, nw) {
			return true
		}
	}
	return false
}

// Basic is the zero-capability fallback: plain substring containment on
// unnormalized text.
func Basic(title string, anyWords, mustWords, notWords []string) bool {
	for _, w := range mustWords {
		if !strings.Contains(title, w) {
			return false
		}
	}
	for _, w := range notWords {
		if strings.Contains(title, w) {
			return false
		}
	}
	for _, w := range anyWords {
		if strings.Contains(title, w) {
			return true
		}
	}
	return false
}

func (m *Matcher) normWord(s string, cfg Config) string {
	t := s
	if cfg.Normalize.nfkcOn() {
		t = normalize.NFKC(t)
	}
	if cfg.Normalize.openccOn() && m.conv != nil {
		if c, err := m.conv.Convert(t); err == nil {
			t = c
		}
	}
	return strings.TrimSpace(t)
}
