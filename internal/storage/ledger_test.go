package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"sitecorpus/internal/crawler"
)

// FetchLedger must satisfy the crawler's recorder boundary
var _ crawler.FetchRecorder = (*FetchLedger)(nil)

func TestLedgerRecordsFetches(t *testing.T) {
	ledger, err := NewFetchLedger(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewFetchLedger() error: %v", err)
	}
	defer func() {
		_ = ledger.Close()
	}()

	ctx := context.Background()
	records := []*crawler.FetchRecord{
		{
			URL:         "https://example.com/",
			Depth:       0,
			StatusCode:  200,
			ContentType: "text/html",
			TTFB:        12 * time.Millisecond,
			Download:    80 * time.Millisecond,
			Attempts:    1,
			FetchedAt:   time.Now().UTC(),
			Accepted:    true,
		},
		{
			URL:        "https://example.com/missing",
			Depth:      1,
			StatusCode: 404,
			Attempts:   1,
			FetchedAt:  time.Now().UTC(),
			Error:      "status 404",
		},
	}

	for _, record := range records {
		if err := ledger.RecordFetch(ctx, record); err != nil {
			t.Fatalf("RecordFetch() error: %v", err)
		}
	}

	total, accepted, err := ledger.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 records, got %d", total)
	}
	if accepted != 1 {
		t.Errorf("Expected 1 accepted record, got %d", accepted)
	}
}

func TestLedgerReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	ledger, err := NewFetchLedger(path)
	if err != nil {
		t.Fatalf("NewFetchLedger() error: %v", err)
	}
	record := &crawler.FetchRecord{
		URL:       "https://example.com/",
		FetchedAt: time.Now().UTC(),
		Accepted:  true,
	}
	if err := ledger.RecordFetch(context.Background(), record); err != nil {
		t.Fatalf("RecordFetch() error: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened, err := NewFetchLedger(path)
	if err != nil {
		t.Fatalf("NewFetchLedger() reopen error: %v", err)
	}
	defer func() {
		_ = reopened.Close()
	}()

	total, _, err := reopened.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 record after reopen, got %d", total)
	}
}
