// Package config provides configuration management for the scraping pipeline.
// It defines configuration structures and default values for crawling,
// extraction and output parameters.
package config

import (
	"strings"
	"time"
)

// PipelineConfig holds the full pipeline configuration
type PipelineConfig struct {
	// Crawl scope
	StartURL string `mapstructure:"start_url" yaml:"start_url"` // Seed URL for crawling
	MaxPages int    `mapstructure:"max_pages" yaml:"max_pages"` // Maximum number of pages to fetch
	MaxDepth int    `mapstructure:"max_depth" yaml:"max_depth"` // Maximum link depth from the seed

	// Politeness and transport
	RequestDelay   time.Duration `mapstructure:"request_delay" yaml:"request_delay"`     // Delay between requests
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // HTTP request timeout
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`           // HTTP User-Agent header
	RespectRobots  bool          `mapstructure:"respect_robots" yaml:"respect_robots"`   // Whether to honor robots.txt

	// Output
	OutputPath string `mapstructure:"output_path" yaml:"output_path"` // Path to the JSONL corpus file
	LedgerPath string `mapstructure:"ledger_path" yaml:"ledger_path"` // Path to the SQLite fetch ledger (empty=disabled)
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *PipelineConfig {
	return &PipelineConfig{
		MaxPages:       100,
		MaxDepth:       5,
		RequestDelay:   1 * time.Second,
		RequestTimeout: 10 * time.Second,
		UserAgent:      "SiteCorpus/1.0",
		RespectRobots:  true,
		OutputPath:     "./corpus.jsonl",
	}
}

// Validate checks if the configuration is valid
func (c *PipelineConfig) Validate() error {
	if c.StartURL == "" {
		return ErrMissingStartURL
	}

	if !strings.HasPrefix(c.StartURL, "http://") && !strings.HasPrefix(c.StartURL, "https://") {
		return ErrInvalidStartURL
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RequestDelay < 0 {
		return ErrNegativeDelay
	}

	if c.UserAgent == "" {
		return ErrInvalidUserAgent
	}

	if c.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	return nil
}
