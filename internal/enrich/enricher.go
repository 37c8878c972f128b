// Package enrich computes language, content-type, and quality metadata
// for extracted documents. All detection is heuristic and pure: the same
// inputs always produce the same metadata.
package enrich

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// Words per minute used for the reading time estimate
	readingSpeedWPM = 200
	// Minimum text length before language scoring is attempted
	languageMinChars = 50
	// Minimum winning score for a non-default language
	languageMinScore = 5

	substantialWordCount = 100
	longFormWordCount    = 1000
)

// Metadata is the enrichment result for one document
type Metadata struct {
	Language           string
	ContentType        string
	WordCount          int
	CharCount          int
	ReadingTimeMinutes int
	HasCode            bool
	IsSubstantial      bool
	IsLongForm         bool
}

// languageProfile scores one language by counting high-frequency
// function words in lowercased text.
type languageProfile struct {
	code     string
	patterns []*regexp.Regexp
}

// Enricher derives document metadata from URL, title, and body text
type Enricher struct {
	profiles       []languageProfile
	codeIndicators []*regexp.Regexp
}

// New creates an Enricher with the built-in detection rules
func New() *Enricher {
	return &Enricher{
		profiles: []languageProfile{
			{code: "en", patterns: compileAll(
				`\b(the|and|or|but|in|on|at|to|for|of|with|by)\b`,
				`\b(is|are|was|were|been|being|have|has|had)\b`,
			)},
			{code: "es", patterns: compileAll(
				`\b(el|la|los|las|un|una|con|por|para|de|en)\b`,
				`\b(es|son|era|eran|ser|estar)\b`,
			)},
			{code: "fr", patterns: compileAll(
				`\b(le|la|les|un|une|avec|pour|de|dans|sur)\b`,
				`\b(est|sont|était|étaient|être|avoir)\b`,
			)},
			{code: "de", patterns: compileAll(
				`\b(der|die|das|ein|eine|mit|für|von|in|auf)\b`,
				`\b(ist|sind|war|waren|sein|haben)\b`,
			)},
		},
		codeIndicators: compileAll(
			`(?i)function\s+\w+\s*\(`,
			`(?i)def\s+\w+\s*\(`,
			`(?i)class\s+\w+`,
			`(?i)import\s+\w+`,
			`(?i)<\?php`,
			`(?i)<script`,
			"```",
			"`[^`]+`",
		),
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Enrich computes metadata for one document
func (e *Enricher) Enrich(pageURL, title, bodyText string) Metadata {
	wordCount := len(strings.Fields(bodyText))

	return Metadata{
		Language:           e.detectLanguage(bodyText),
		ContentType:        detectContentType(pageURL, bodyText),
		WordCount:          wordCount,
		CharCount:          utf8.RuneCountInString(bodyText),
		ReadingTimeMinutes: readingTime(wordCount),
		HasCode:            e.hasCode(bodyText),
		IsSubstantial:      wordCount >= substantialWordCount,
		IsLongForm:         wordCount >= longFormWordCount,
	}
}

// detectLanguage scores each profile against the lowercased text and
// returns the highest scorer above the confidence floor. Short texts
// and low-confidence scores default to English. Ties resolve in
// profile order, so English wins an exact tie.
func (e *Enricher) detectLanguage(text string) string {
	if utf8.RuneCountInString(text) < languageMinChars {
		return "en"
	}

	lower := strings.ToLower(text)
	best, bestScore := "en", 0
	for _, profile := range e.profiles {
		score := 0
		for _, pattern := range profile.patterns {
			score += len(pattern.FindAllString(lower, -1))
		}
		if score > bestScore {
			best, bestScore = profile.code, score
		}
	}

	if bestScore > languageMinScore {
		return best
	}
	return "en"
}

// URL path segments mapped to content categories, checked in order
var contentTypeRules = []struct {
	segments []string
	category string
}{
	{[]string{"/docs/", "/documentation/", "/guide/", "/tutorial/"}, "doc_page"},
	{[]string{"/blog/", "/post/", "/article/", "/news/"}, "article"},
	{[]string{"/product/", "/shop/", "/item/", "/p/"}, "product_page"},
}

// detectContentType classifies a page by URL shape first, then body
// length. First matching rule wins.
func detectContentType(pageURL, bodyText string) string {
	urlLower := strings.ToLower(pageURL)

	for _, rule := range contentTypeRules {
		for _, segment := range rule.segments {
			if strings.Contains(urlLower, segment) {
				return rule.category
			}
		}
	}

	if isHomepage(pageURL) {
		return "homepage"
	}

	if len(bodyText) > 500 {
		return "article"
	}
	return "page"
}

// isHomepage reports whether the URL looks like a bare domain root
func isHomepage(pageURL string) bool {
	trimmed := strings.TrimRight(pageURL, "/")
	for _, tld := range []string{"com", "org", "net", "io"} {
		if strings.HasSuffix(trimmed, tld) {
			return true
		}
	}
	return strings.Count(pageURL, "/") <= 2
}

// readingTime estimates minutes to read at 200 wpm, minimum one minute
func readingTime(wordCount int) int {
	minutes := int(math.Round(float64(wordCount) / readingSpeedWPM))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (e *Enricher) hasCode(text string) bool {
	for _, pattern := range e.codeIndicators {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
