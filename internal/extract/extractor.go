// Package extract isolates main body text from raw HTML. It runs a
// layered strategy chain: density-based extraction first, a reader-mode
// engine second, and a selector/boilerplate heuristic as the guaranteed
// fallback. The first strategy producing enough text wins.
package extract

import (
	"log/slog"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
)

const (
	// Minimum body length for a reader-mode result to be accepted
	readerMinChars = 50
	// Minimum body length for a content-selector candidate
	selectorMinChars = 100
	// Minimum body length for the cleaned <body> fallback
	bodyMinChars = 50
)

// Content is the extraction result for one page
type Content struct {
	Title    string
	BodyText string
}

// strategy is a single extraction attempt; ok reports whether the
// result qualifies and the chain should stop.
type strategy interface {
	name() string
	attempt(htmlContent, pageURL string) (*Content, bool)
}

// Extractor extracts title and body text from HTML pages
type Extractor struct {
	strategies []strategy
}

// New creates an Extractor with the default strategy chain
func New() *Extractor {
	return &Extractor{
		strategies: []strategy{
			trafilaturaStrategy{},
			readabilityStrategy{},
			heuristicStrategy{},
		},
	}
}

// Extract produces the best-effort title and body text for a page.
// It never returns an error: any internal failure degrades to an
// empty-content result with a sentinel title.
func (e *Extractor) Extract(htmlContent, pageURL string) (content Content) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Content extraction failed", "url", pageURL, "panic", r)
			content = Content{Title: "Extraction Error", BodyText: ""}
		}
	}()

	for _, s := range e.strategies {
		result, ok := s.attempt(htmlContent, pageURL)
		if !ok {
			continue
		}
		result.Title = strings.TrimSpace(result.Title)
		result.BodyText = Normalize(result.BodyText)
		slog.Debug("Content extracted", "url", pageURL, "strategy", s.name(), "chars", len(result.BodyText))
		return *result
	}

	return Content{Title: "Extraction Error", BodyText: ""}
}

// trafilaturaStrategy isolates the most content-dense subtree via
// text-to-markup density scoring.
type trafilaturaStrategy struct{}

func (trafilaturaStrategy) name() string { return "trafilatura" }

func (trafilaturaStrategy) attempt(htmlContent, pageURL string) (*Content, bool) {
	opts := trafilatura.Options{}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(htmlContent), opts)
	if err != nil || result == nil {
		return nil, false
	}

	text := strings.TrimSpace(result.ContentText)
	if len(text) <= readerMinChars {
		return nil, false
	}

	return &Content{Title: result.Metadata.Title, BodyText: text}, true
}

// readabilityStrategy applies the go-shiori reader-mode engine
type readabilityStrategy struct{}

func (readabilityStrategy) name() string { return "readability" }

func (readabilityStrategy) attempt(htmlContent, pageURL string) (*Content, bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, false
	}

	article, err := readability.FromReader(strings.NewReader(htmlContent), u)
	if err != nil {
		return nil, false
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) <= readerMinChars {
		return nil, false
	}

	return &Content{Title: article.Title, BodyText: text}, true
}
