// Package sanitize cleans externally-sourced text before it enters the data
// model. Every feed field passes through Text exactly once on ingestion.
package sanitize

import (
	"regexp"
	"strings"
)

// MaxLength caps sanitized output. Longer input is truncated and suffixed
// with an ellipsis, so output never exceeds MaxLength+3 runes.
const MaxLength = 10000

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	jsURIPattern     = regexp.MustCompile(`(?i)javascript:`)
	eventAttrPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
	scriptPattern    = regexp.MustCompile(`(?i)<script`)
	scriptEndPattern = regexp.MustCompile(`(?i)</script>`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// entities are decoded sequentially, in this order. Decoding &amp; first
// means double-encoded input ("&amp;lt;") fully decodes in a single pass.
var entities = [...][2]string{
	{"&amp;", "&"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&#x27;", "'"},
	{"&#x2F;", "/"},
	{"&#x60;", "`"},
	{"&#x3D;", "="},
}

// Text strips markup, decodes entities, removes script vectors and caps
// length. It is total: any input produces a plain-text string, never an error.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = tagPattern.ReplaceAllString(s, "")

	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}

	// Entity decoding can resurrect markup ("&lt;script&gt;"), so script
	// vectors are stripped again after decoding.
	s = jsURIPattern.ReplaceAllString(s, "")
	s = eventAttrPattern.ReplaceAllString(s, "")
	s = scriptPattern.ReplaceAllString(s, "")
	s = scriptEndPattern.ReplaceAllString(s, "")

	s = strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))

	if runes := []rune(s); len(runes) > MaxLength {
		s = string(runes[:MaxLength]) + "..."
	}

	return s
}
