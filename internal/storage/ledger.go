package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sitecorpus/internal/crawler"
	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

// FetchLedger records per-fetch telemetry in SQLite. It implements
// crawler.FetchRecorder.
type FetchLedger struct {
	db *sql.DB
}

// NewFetchLedger opens or creates the ledger database
func NewFetchLedger(dbPath string) (*FetchLedger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection prevents lock conflicts
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	ledger := &FetchLedger{db: db}
	if err := ledger.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return ledger, nil
}

func (l *FetchLedger) initSchema() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := l.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := l.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordFetch stores one fetch attempt
func (l *FetchLedger) RecordFetch(ctx context.Context, record *crawler.FetchRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO fetches
			(url, depth, status_code, content_type, ttfb_ms, download_time_ms, attempts, fetched_at, accepted, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.URL, record.Depth, record.StatusCode, record.ContentType,
		record.TTFB.Milliseconds(), record.Download.Milliseconds(),
		record.Attempts, record.FetchedAt, record.Accepted, record.Error)
	if err != nil {
		return fmt.Errorf("failed to insert fetch record: %w", err)
	}
	return nil
}

// Counts returns the total and accepted fetch counts
func (l *FetchLedger) Counts(ctx context.Context) (total, accepted int, err error) {
	row := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(accepted), 0) FROM fetches`)
	if err := row.Scan(&total, &accepted); err != nil {
		return 0, 0, fmt.Errorf("failed to count fetches: %w", err)
	}
	return total, accepted, nil
}

// Close closes the database connection
func (l *FetchLedger) Close() error {
	return l.db.Close()
}
