// Package crawler provides scoped breadth-first web crawling. It
// implements a sequential frontier-driven crawler with politeness
// delays, robots.txt compliance, and retry on transient fetch errors.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"sitecorpus/internal/config"
	"sitecorpus/internal/parser"
)

// SiteCrawler crawls one site breadth-first from a seed URL. It owns
// the frontier and visited set for the duration of a Crawl call; a
// SiteCrawler is single-use and not safe for concurrent calls.
type SiteCrawler struct {
	startURL      string
	maxPages      int
	maxDepth      int
	userAgent     string
	scopeHost     string
	basePrefix    string
	respectRobots bool

	httpClient *HTTPClient
	limiter    *rate.Limiter
	robots     *RobotsPolicy
	recorder   FetchRecorder

	visited map[string]bool
	queued  map[string]bool
	stats   CrawlStats
}

// NewSiteCrawler creates a crawler scoped to the start URL's host.
// The recorder is optional; pass nil to disable fetch telemetry.
func NewSiteCrawler(cfg *config.PipelineConfig, recorder FetchRecorder) (*SiteCrawler, error) {
	parsed, err := url.Parse(cfg.StartURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}

	return &SiteCrawler{
		startURL:      cfg.StartURL,
		maxPages:      cfg.MaxPages,
		maxDepth:      cfg.MaxDepth,
		userAgent:     cfg.UserAgent,
		scopeHost:     parsed.Host,
		basePrefix:    parsed.Scheme + "://" + parsed.Host,
		respectRobots: cfg.RespectRobots,
		httpClient:    NewHTTPClient(cfg.UserAgent, cfg.RequestTimeout),
		limiter:       rate.NewLimiter(rate.Every(cfg.RequestDelay), 1),
		recorder:      recorder,
		visited:       make(map[string]bool),
		queued:        make(map[string]bool),
	}, nil
}

// Crawl runs the breadth-first traversal and returns the fetched
// pages in fetch order. The traversal stops when the frontier empties,
// the page budget is reached, or the context is cancelled. Individual
// fetch failures are logged and skipped, never fatal.
func (c *SiteCrawler) Crawl(ctx context.Context) ([]FetchedPage, error) {
	slog.Info("Starting crawl", "start_url", c.startURL, "max_pages", c.maxPages, "max_depth", c.maxDepth)

	if c.respectRobots {
		if base, err := url.Parse(c.startURL); err == nil {
			c.robots = LoadRobotsPolicy(ctx, c.httpClient, base, c.userAgent)
		}
	}

	frontier := []FrontierEntry{{URL: c.startURL, Depth: 0}}
	var pages []FetchedPage

	for len(frontier) > 0 && len(pages) < c.maxPages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		entry := frontier[0]
		frontier = frontier[1:]

		if c.visited[entry.URL] {
			continue
		}
		if !c.isValidURL(entry.URL, entry.Depth) {
			c.stats.URLsSkipped++
			continue
		}

		// Mark visited before fetching so a failed fetch cannot be re-queued
		c.visited[entry.URL] = true

		if err := c.limiter.Wait(ctx); err != nil {
			return pages, err
		}

		page, record := c.fetchPage(ctx, entry)
		c.record(ctx, record)
		if page == nil {
			c.stats.FetchErrors++
			continue
		}

		pages = append(pages, *page)
		c.stats.PagesFetched++

		if entry.Depth < c.maxDepth {
			for _, link := range c.extractLinks(page) {
				if c.queued[link] || c.visited[link] {
					continue
				}
				if !c.isValidURL(link, entry.Depth+1) {
					continue
				}
				frontier = append(frontier, FrontierEntry{URL: link, Depth: entry.Depth + 1})
				c.queued[link] = true
				c.stats.URLsDiscovered++
			}
		}
	}

	slog.Info("Crawl complete", "pages", len(pages), "discovered", c.stats.URLsDiscovered, "errors", c.stats.FetchErrors)
	return pages, nil
}

// isValidURL applies the scope, depth, pattern, and robots checks
func (c *SiteCrawler) isValidURL(rawURL string, depth int) bool {
	if c.visited[rawURL] {
		return false
	}
	if depth > c.maxDepth {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Host != c.scopeHost {
		return false
	}
	if !strings.HasPrefix(rawURL, c.basePrefix) {
		return false
	}
	if matchesSkipPattern(rawURL) {
		return false
	}

	return c.robots.Allowed(parsed)
}

// fetchPage fetches one URL and keeps only HTML responses. A nil page
// with a populated record means the URL produced nothing.
func (c *SiteCrawler) fetchPage(ctx context.Context, entry FrontierEntry) (*FetchedPage, *FetchRecord) {
	slog.Info("Fetching", "url", entry.URL, "depth", entry.Depth)

	record := &FetchRecord{
		URL:       entry.URL,
		Depth:     entry.Depth,
		FetchedAt: time.Now().UTC(),
	}

	resp, err := c.httpClient.Get(ctx, entry.URL)
	if err != nil {
		slog.Warn("Fetch failed", "url", entry.URL, "error", err)
		record.Error = err.Error()
		return nil, record
	}

	contentType := strings.ToLower(resp.ContentType)
	record.StatusCode = resp.StatusCode
	record.ContentType = contentType
	record.TTFB = resp.Metrics.TTFB
	record.Download = resp.Metrics.DownloadTime
	record.Attempts = resp.Metrics.Attempts

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("HTTP error", "url", entry.URL, "status", resp.StatusCode)
		record.Error = fmt.Sprintf("status %d", resp.StatusCode)
		return nil, record
	}

	if !strings.Contains(contentType, "text/html") {
		slog.Debug("Skipping non-HTML content", "url", entry.URL, "content_type", contentType)
		record.Error = "non-HTML content"
		return nil, record
	}

	record.Accepted = true
	return &FetchedPage{
		URL:         entry.URL,
		HTML:        string(resp.Body),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Headers:     resp.Headers,
	}, record
}

func (c *SiteCrawler) record(ctx context.Context, rec *FetchRecord) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordFetch(ctx, rec); err != nil {
		slog.Warn("Failed to record fetch", "url", rec.URL, "error", err)
	}
}

// extractLinks returns the absolute, fragment-stripped links of a page
func (c *SiteCrawler) extractLinks(page *FetchedPage) []string {
	p, err := parser.NewHTMLParser(page.URL)
	if err != nil {
		return nil
	}

	result, err := p.Parse([]byte(page.HTML))
	if err != nil {
		slog.Error("Error extracting links", "url", page.URL, "error", err)
		return nil
	}
	return result.Links
}

// Stats returns counters for the completed crawl
func (c *SiteCrawler) Stats() CrawlStats {
	return c.stats
}

// Close releases the underlying HTTP client
func (c *SiteCrawler) Close() {
	c.httpClient.Close()
}
