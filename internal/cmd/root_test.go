package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"sitecorpus/internal/pipeline"
	"sitecorpus/internal/storage"
)

func TestRootCommandFlags(t *testing.T) {
	flags := []string{
		"max-pages", "max-depth", "delay", "timeout",
		"user-agent", "ignore-robots", "output", "ledger",
		"verbose", "show-config",
	}

	for _, name := range flags {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("Missing flag --%s", name)
		}
	}

	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Errorf("Missing persistent flag --config")
	}
}

func TestLoadConfigStartURLFromArgs(t *testing.T) {
	cfg, err := loadConfig(rootCmd, []string{"https://example.com"})
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.StartURL != "https://example.com" {
		t.Errorf("Expected start URL from args, got %q", cfg.StartURL)
	}
	if cfg.MaxPages != 100 || cfg.MaxDepth != 5 {
		t.Errorf("Expected default limits 100/5, got %d/%d", cfg.MaxPages, cfg.MaxDepth)
	}
	if !cfg.RespectRobots {
		t.Errorf("Expected robots.txt respected by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config with valid URL must validate: %v", err)
	}
}

func TestLoadConfigIgnoreRobots(t *testing.T) {
	if err := rootCmd.Flags().Set("ignore-robots", "true"); err != nil {
		t.Fatalf("Set flag error: %v", err)
	}
	defer func() {
		_ = rootCmd.Flags().Set("ignore-robots", "false")
	}()

	cfg, err := loadConfig(rootCmd, []string{"https://example.com"})
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.RespectRobots {
		t.Errorf("--ignore-robots must disable robots.txt checks")
	}
}

func TestLoadConfigRejectsBadScheme(t *testing.T) {
	cfg, err := loadConfig(rootCmd, []string{"ftp://example.com"})
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected validation failure for non-HTTP scheme")
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "2025-08-25")

	if !strings.Contains(rootCmd.Version, "1.2.3") {
		t.Errorf("Expected version string to contain 1.2.3, got %q", rootCmd.Version)
	}
}

func TestReportCommandMissingFile(t *testing.T) {
	err := runReport(reportCmd, []string{filepath.Join(t.TempDir(), "absent.jsonl")})
	if err == nil {
		t.Fatal("Expected error for missing corpus file")
	}
}

func TestReportCommandOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	store := storage.NewJSONLStore(path)

	docs := []pipeline.Document{
		{
			DocID:              pipeline.DocID("https://example.com/a"),
			URL:                "https://example.com/a",
			Title:              "Sample Document",
			Language:           "en",
			ContentType:        "article",
			WordCount:          250,
			CharCount:          1500,
			ReadingTimeMinutes: 1,
			IsSubstantial:      true,
		},
	}
	if err := store.WriteDocuments(docs, false); err != nil {
		t.Fatalf("WriteDocuments() error: %v", err)
	}

	var buf bytes.Buffer
	reportCmd.SetOut(&buf)
	defer reportCmd.SetOut(nil)

	if err := runReport(reportCmd, []string{path}); err != nil {
		t.Fatalf("runReport() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"DOCUMENT ANALYTICS", "Total Documents: 1", "Sample Document"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}
