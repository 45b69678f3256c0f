package textnorm

import (
	"regexp"
	"strings"
)

var (
	// urlPattern matches http(s) links and bare www hosts up to the next
	// whitespace. Trailing punctuation is consumed with the URL, which is
	// acceptable noise for snippet purposes.
	urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)

	// markupReplacer blanks out markdown structural punctuation.
	markupReplacer = strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		">", " ",
		"_", " ",
		"~", " ",
		"|", " ",
	)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize strips URL-like substrings and markup punctuation, collapses
// runs of whitespace (including newlines) to a single space, and trims
// leading/trailing space. Empty input yields empty output.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := urlPattern.ReplaceAllString(raw, " ")
	s = markupReplacer.Replace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
