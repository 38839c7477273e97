package formatter

import (
	"regexp"
	"strings"
)

var (
	styleBlockPattern  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	lineBreakPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockTagPattern    = regexp.MustCompile(`(?i)</?(?:p|div|li|ul|ol|h[1-6])(?:\s[^>]*)?/?>`)
	anyTagPattern      = regexp.MustCompile(`<[^>]+>`)
	namedEntityPattern = regexp.MustCompile(`(?i)&[a-z]+;`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Decoded in order, so "&amp;lt;" ends up as "<".
var entities = [][2]string{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// NormalizeHTML turns an HTML-bearing description into single-spaced plain
// text. Block-level tags become line breaks before whitespace is collapsed so
// that adjacent paragraphs never fuse into one word.
func NormalizeHTML(raw string) string {
	if raw == "" {
		return ""
	}

	s := styleBlockPattern.ReplaceAllString(raw, "")
	s = scriptBlockPattern.ReplaceAllString(s, "")
	s = lineBreakPattern.ReplaceAllString(s, "\n")
	s = blockTagPattern.ReplaceAllString(s, "\n")
	s = anyTagPattern.ReplaceAllString(s, " ")

	// Known entities are decoded first; whatever named entity is left over
	// carries no meaning for matching.
	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	s = namedEntityPattern.ReplaceAllString(s, " ")
	// Escaped markup ("&lt;b&gt;") only turns into a tag once decoded.
	s = anyTagPattern.ReplaceAllString(s, " ")

	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
