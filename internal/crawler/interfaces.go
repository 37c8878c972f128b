package crawler

import "context"

// FetchRecorder persists per-fetch telemetry. Recording failures must
// not abort the crawl; callers log and continue.
type FetchRecorder interface {
	// RecordFetch stores one fetch attempt
	RecordFetch(ctx context.Context, record *FetchRecord) error

	// Close releases the underlying store
	Close() error
}
