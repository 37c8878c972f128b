// Package storage provides persistence for the scraping pipeline: the
// JSONL document corpus and an optional SQLite fetch ledger.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"sitecorpus/internal/pipeline"
)

// Upper bound for one JSONL line; body text can be large
const maxRecordBytes = 16 * 1024 * 1024

// JSONLStore persists documents as newline-delimited JSON, one
// document per line. It implements pipeline.DocumentStore.
type JSONLStore struct {
	path string
}

// NewJSONLStore creates a store backed by the given file path
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the corpus file path
func (s *JSONLStore) Path() string {
	return s.path
}

// LoadProcessedURLs reads the corpus and collects the URL of every
// well-formed record. A missing file yields an empty set; malformed
// lines are skipped, not fatal.
func (s *JSONLStore) LoadProcessedURLs() (map[string]bool, error) {
	urls := make(map[string]bool)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return urls, nil
		}
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(line, &record); err != nil {
			slog.Debug("Skipping malformed corpus line", "error", err)
			continue
		}
		if record.URL != "" {
			urls[record.URL] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return urls, nil
}

// ReadDocuments loads every well-formed record in the corpus.
// Malformed lines are logged and skipped.
func (s *JSONLStore) ReadDocuments() ([]pipeline.Document, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var docs []pipeline.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var doc pipeline.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			slog.Warn("Invalid JSON in corpus", "line", lineNum, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return docs, nil
}

// WriteDocuments writes one JSON line per document. In append mode
// existing records are preserved; otherwise the file is truncated.
// A single record's serialization failure is logged and the record
// dropped; remaining records are still written.
func (s *JSONLStore) WriteDocuments(docs []pipeline.Document, appendMode bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(s.path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open corpus for writing: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	for _, doc := range docs {
		// Marshal before writing so a failed record never emits a
		// partial line
		line, err := marshalDocument(doc)
		if err != nil {
			slog.Error("Error serializing document", "url", doc.URL, "error", err)
			continue
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("failed to write corpus record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush corpus: %w", err)
	}

	return f.Sync()
}

// marshalDocument renders one document as a newline-terminated JSON
// line with non-ASCII and HTML characters preserved.
func marshalDocument(doc pipeline.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
