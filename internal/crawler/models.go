package crawler

import (
	"net/http"
	"time"
)

// FrontierEntry represents a discovered URL awaiting fetch
type FrontierEntry struct {
	URL   string // Absolute URL, fragment stripped
	Depth int    // Link hops from the seed URL
}

// FetchedPage represents the raw result of one successful HTML fetch
type FetchedPage struct {
	URL         string      // URL as requested
	HTML        string      // Response body
	StatusCode  int         // HTTP status code
	ContentType string      // HTTP Content-Type header, lowercased
	Headers     http.Header // Full response headers
}

// FetchRecord represents one fetch attempt for the optional ledger
type FetchRecord struct {
	URL         string        // URL that was fetched
	Depth       int           // Frontier depth at fetch time
	StatusCode  int           // Final HTTP status code (0 on transport failure)
	ContentType string        // HTTP Content-Type header
	TTFB        time.Duration // Time to first byte
	Download    time.Duration // Total download time
	Attempts    int           // HTTP attempts including retries
	FetchedAt   time.Time     // Fetch timestamp (UTC)
	Accepted    bool          // Whether the page entered the result set
	Error       string        // Failure detail, empty on success
}

// CrawlStats summarizes one crawl run
type CrawlStats struct {
	PagesFetched   int // Pages accepted into the result set
	URLsDiscovered int // Links enqueued onto the frontier
	URLsSkipped    int // Candidates rejected by scope/pattern/robots checks
	FetchErrors    int // Fetches that produced no page
}
