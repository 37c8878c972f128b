// Package pipeline orchestrates the crawl, extraction, enrichment, and
// persistence stages that produce the document corpus.
package pipeline

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"sitecorpus/internal/crawler"
	"sitecorpus/internal/enrich"
	"sitecorpus/internal/extract"
)

// Minimum trimmed body length for a page to enter the corpus
const minBodyChars = 50

// Document is one corpus record, serialized as a single JSONL line
type Document struct {
	DocID              string `json:"doc_id"`
	URL                string `json:"url"`
	Title              string `json:"title"`
	BodyText           string `json:"body_text"`
	FetchedAt          string `json:"fetched_at"`
	Language           string `json:"language"`
	ContentType        string `json:"content_type"`
	WordCount          int    `json:"word_count"`
	CharCount          int    `json:"char_count"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	HasCode            bool   `json:"has_code"`
	IsSubstantial      bool   `json:"is_substantial"`
	IsLongForm         bool   `json:"is_long_form"`
}

// PageSource produces the raw pages for one run
type PageSource interface {
	Crawl(ctx context.Context) ([]crawler.FetchedPage, error)
}

// DocumentStore persists accepted documents and remembers which URLs
// the corpus already contains.
type DocumentStore interface {
	// LoadProcessedURLs returns the URLs already present in the corpus.
	// A missing corpus file yields an empty set, not an error.
	LoadProcessedURLs() (map[string]bool, error)

	// WriteDocuments persists the documents, appending when appendMode
	// is set and truncating otherwise
	WriteDocuments(docs []Document, appendMode bool) error

	// Path returns the corpus location for reporting
	Path() string
}

// Summary holds the result statistics of one pipeline run
type Summary struct {
	PagesCrawled       int
	DocumentsProcessed int
	DocumentsSkipped   int
	TotalWordCount     int
	AverageWordCount   float64
	OutputPath         string
}

// DocID returns the stable document identity for a URL. It depends on
// the URL alone, so repeated runs assign the same ID to the same page.
func DocID(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Pipeline wires a page source to the extraction and enrichment
// stages and persists accepted documents.
type Pipeline struct {
	source    PageSource
	extractor *extract.Extractor
	enricher  *enrich.Enricher
	store     DocumentStore
	now       func() time.Time
}

// New creates a Pipeline over the given page source and store
func New(source PageSource, store DocumentStore) *Pipeline {
	return &Pipeline{
		source:    source,
		extractor: extract.New(),
		enricher:  enrich.New(),
		store:     store,
		now:       time.Now,
	}
}

// Run executes one full pipeline pass: load the processed-URL
// registry, crawl, extract and enrich each page, and persist the
// accepted documents. URLs already in the corpus are skipped, so
// re-running against the same output produces no duplicate records.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	slog.Info("Starting scraping pipeline")

	processed, err := p.store.LoadProcessedURLs()
	if err != nil {
		return nil, fmt.Errorf("failed to load processed URLs: %w", err)
	}
	// Append only when the corpus already had records before this run
	appendMode := len(processed) > 0
	if appendMode {
		slog.Info("Found previously processed URLs", "count", len(processed))
	}

	pages, err := p.source.Crawl(ctx)
	if err != nil {
		return nil, fmt.Errorf("crawl failed: %w", err)
	}

	var docs []Document
	skipped := 0

	for _, page := range pages {
		doc := p.processPage(page, processed)
		if doc == nil {
			skipped++
			continue
		}
		docs = append(docs, *doc)
		processed[page.URL] = true
	}

	slog.Info("Writing documents", "count", len(docs), "output", p.store.Path())
	if err := p.store.WriteDocuments(docs, appendMode); err != nil {
		return nil, fmt.Errorf("failed to write corpus: %w", err)
	}

	summary := &Summary{
		PagesCrawled:       len(pages),
		DocumentsProcessed: len(docs),
		DocumentsSkipped:   skipped,
		OutputPath:         p.store.Path(),
	}
	for _, doc := range docs {
		summary.TotalWordCount += doc.WordCount
	}
	if len(docs) > 0 {
		avg := float64(summary.TotalWordCount) / float64(len(docs))
		summary.AverageWordCount = math.Round(avg*100) / 100
	}

	slog.Info("Pipeline complete",
		"pages_crawled", summary.PagesCrawled,
		"documents_processed", summary.DocumentsProcessed,
		"documents_skipped", summary.DocumentsSkipped)
	return summary, nil
}

// processPage extracts and enriches one page. A nil return means the
// page was skipped: already processed, or not enough content.
func (p *Pipeline) processPage(page crawler.FetchedPage, processed map[string]bool) *Document {
	if processed[page.URL] {
		slog.Debug("Skipping already processed URL", "url", page.URL)
		return nil
	}

	content := p.extractor.Extract(page.HTML, page.URL)
	if len(strings.TrimSpace(content.BodyText)) < minBodyChars {
		slog.Debug("Skipping page with insufficient content", "url", page.URL)
		return nil
	}

	meta := p.enricher.Enrich(page.URL, content.Title, content.BodyText)

	return &Document{
		DocID:              DocID(page.URL),
		URL:                page.URL,
		Title:              content.Title,
		BodyText:           content.BodyText,
		FetchedAt:          p.now().UTC().Format(time.RFC3339),
		Language:           meta.Language,
		ContentType:        meta.ContentType,
		WordCount:          meta.WordCount,
		CharCount:          meta.CharCount,
		ReadingTimeMinutes: meta.ReadingTimeMinutes,
		HasCode:            meta.HasCode,
		IsSubstantial:      meta.IsSubstantial,
		IsLongForm:         meta.IsLongForm,
	}
}
