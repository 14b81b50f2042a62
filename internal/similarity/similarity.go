// Package similarity provides the fuzzy string scoring capability
// shared by deduplication and keyword matching. Constructed once at
// startup and injected; consumers declare their own Scorer interfaces.
package similarity

import fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

// TokenSet scores string pairs with a token-set ratio: word order and
// repetition are ignored, so "A - B" and "B: A" score 100.
type TokenSet struct{}

// TokenSetRatio returns a 0-100 similarity score.
func (TokenSet) TokenSetRatio(a, b string) int {
	return fuzzy.TokenSetRatio(a, b)
}
