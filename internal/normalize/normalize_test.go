package normalize

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type upperConv struct{}

func (upperConv) Convert(s string) (string, error) { return strings.ToUpper(s), nil }

type brokenConv struct{}

func (brokenConv) Convert(string) (string, error) { return "", errors.New("no dictionary") }

func TestTextFoldsWidthAndTrims(t *testing.T) {
	n := New(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  hello  ", "hello"},
		{"ＡＢＣ１２３", "ABC123"},      // fullwidth forms fold to ASCII
		{"ｶﾀｶﾅ", "カタカナ"},           // halfwidth katakana folds to fullwidth
		{"title　", "title"}, // ideographic space trims away
	}

	for _, tt := range tests {
		if got := n.Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextAppliesConverter(t *testing.T) {
	n := New(upperConv{})
	if got := n.Text("abc"); got != "ABC" {
		t.Errorf("Text with converter = %q, want %q", got, "ABC")
	}
}

func TestTextConverterFailureFallsBack(t *testing.T) {
	n := New(brokenConv{})
	if got := n.Text("abc"); got != "abc" {
		t.Errorf("Text with failing converter = %q, want %q", got, "abc")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"seconds int", 1700000000, 1700000000},
		{"seconds int64", int64(1700000000), 1700000000},
		{"milliseconds", int64(1700000000000), 1700000000},
		{"milliseconds float", float64(1700000000000), 1700000000},
		{"zero stays zero", 0, 0},
		{"iso8601", "2023-11-14T22:13:20Z", 1700000000},
		{"rfc1123", "Tue, 14 Nov 2023 22:13:20 GMT", 1700000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.in); got != tt.want {
				t.Errorf("ParseTimestamp(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimestampFallsBackToNow(t *testing.T) {
	for _, in := range []any{nil, "not a date", []string{"x"}} {
		got := ParseTimestamp(in)
		now := time.Now().Unix()
		if got < now-5 || got > now+5 {
			t.Errorf("ParseTimestamp(%v) = %d, want within 5s of %d", in, got, now)
		}
	}
}

func TestMakeIDDeterministic(t *testing.T) {
	a := MakeID("src", "Title", "https://example.com/a")
	b := MakeID("src", "Title", "https://example.com/a")
	if a != b {
		t.Errorf("MakeID not deterministic: %q vs %q", a, b)
	}
	if len(a) != 32 {
		t.Errorf("MakeID length = %d, want 32", len(a))
	}
}

func TestMakeIDSensitiveToEachInput(t *testing.T) {
	base := MakeID("src", "Title", "https://example.com/a")

	if got := MakeID("other", "Title", "https://example.com/a"); got == base {
		t.Error("changing source key did not change id")
	}
	if got := MakeID("src", "Other", "https://example.com/a"); got == base {
		t.Error("changing title did not change id")
	}
	if got := MakeID("src", "Title", "https://example.com/b"); got == base {
		t.Error("changing url did not change id")
	}
}

func TestMakeIDNormalizesTitle(t *testing.T) {
	a := MakeID("src", "Ｔｉｔｌｅ", "u")
	b := MakeID("src", "Title", "u")
	if a != b {
		t.Error("width-variant titles should hash identically")
	}
}
