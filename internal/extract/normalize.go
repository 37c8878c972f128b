package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	blankLineRuns  = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// Normalize cleans extracted text: whitespace runs collapse to single
// spaces, three or more consecutive blank lines collapse to one blank
// line, and leading/trailing whitespace is trimmed. Applying Normalize
// twice yields the same text as applying it once.
func Normalize(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
