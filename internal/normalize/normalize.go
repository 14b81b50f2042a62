// Package normalize canonicalizes the text and timestamps that custom
// sources produce, and derives stable item identifiers from them.
package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// Converter transliterates text between scripts (e.g. traditional to
// simplified Chinese). It is an optional capability: a nil Converter
// simply disables the conversion step.
type Converter interface {
	Convert(s string) (string, error)
}

// Normalizer canonicalizes titles. Construct once at startup and share;
// it is safe for concurrent use.
type Normalizer struct {
	conv Converter
}

// New creates a Normalizer. conv may be nil.
func New(conv Converter) *Normalizer {
	return &Normalizer{conv: conv}
}

// Text applies NFKC folding (full/half width, compatibility forms),
// the optional script conversion, and trims surrounding whitespace.
// Conversion failures fall back to the unconverted text.
func (n *Normalizer) Text(s string) string {
	if s == "" {
		return ""
	}
	t := norm.NFKC.String(s)
	if n != nil && n.conv != nil {
		if c, err := n.conv.Convert(t); err == nil {
			t = c
		}
	}
	return strings.TrimSpace(t)
}

// NFKC folds width and compatibility forms and trims, without script
// conversion. Item ids are derived from this form so they stay stable
// whether or not a converter is installed.
func NFKC(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(norm.NFKC.String(s))
}

// msCutoff is the magnitude above which a numeric timestamp is assumed
// to be milliseconds rather than seconds.
const msCutoff = 1e12

// ParseTimestamp converts a loosely typed timestamp value to epoch
// seconds. Numbers above msCutoff are treated as milliseconds. Strings
// go through lenient date parsing (ISO-8601 and common human formats).
// Anything unparseable, including nil, yields the current time. It
// never fails.
func ParseTimestamp(v any) int64 {
	switch t := v.(type) {
	case int:
		return numericTS(int64(t))
	case int64:
		return numericTS(t)
	case float64:
		return numericTS(int64(t))
	case string:
		ts, err := dateparse.ParseAny(t)
		if err != nil {
			return time.Now().Unix()
		}
		return ts.Unix()
	default:
		return time.Now().Unix()
	}
}

func numericTS(n int64) int64 {
	if n > msCutoff {
		return n / 1000
	}
	return n
}

// MakeID returns a deterministic content hash over source key,
// NFKC-normalized title, and URL. Invalid UTF-8 is dropped rather than
// failing, so the digest is total over arbitrary input.
func MakeID(sourceKey, title, url string) string {
	raw := fmt.Sprintf("%s|%s|%s", sourceKey, NFKC(title), url)
	sum := md5.Sum([]byte(strings.ToValidUTF8(raw, "")))
	return hex.EncodeToString(sum[:])
}
