// Package matching implements the candidate ranking engine: it scores a single
// candidate profile against a set of opportunity records and returns an ordered,
// filtered top-K list with an explainable score breakdown.
package matching

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// stripTags removes markup from descriptions that arrive as HTML
	stripTags = bluemonday.StrictPolicy()

	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText lowercases free text and reduces it to `[a-z0-9 ]` with collapsed,
// trimmed whitespace. HTML tags are stripped first. Total function: never
// fails, empty input yields an empty string.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = stripTags.Sanitize(text)
	text = strings.ToLower(text)
	text = nonAlnumRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
