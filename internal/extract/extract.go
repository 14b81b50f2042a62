// Package extract resolves declarative path expressions against JSON
// documents. All failures (malformed path, absent field) degrade to the
// caller's default; nothing in this package panics or returns an error.
package extract

import "github.com/tidwall/gjson"

// List resolves path against a raw JSON body and returns the matched
// sequence. A scalar match is returned as a one-element slice; no match
// or an empty path yields nil.
func List(data []byte, path string) []gjson.Result {
	if path == "" {
		return nil
	}
	r := gjson.GetBytes(data, path)
	if !r.Exists() {
		return nil
	}
	return r.Array()
}

// String resolves path within doc and returns the match as a string, or
// def when the path is empty or matches nothing.
func String(doc gjson.Result, path, def string) string {
	if path == "" {
		return def
	}
	v := doc.Get(path)
	if !v.Exists() {
		return def
	}
	return v.String()
}

// Value resolves path within doc and reports whether anything matched.
// Callers use the loosely typed result for fields like timestamps and
// ranks whose shape varies by source.
func Value(doc gjson.Result, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	v := doc.Get(path)
	if !v.Exists() {
		return nil, false
	}
	return v.Value(), true
}
