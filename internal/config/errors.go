package config

import "errors"

// Configuration validation errors
var (
	ErrMissingStartURL  = errors.New("start URL is required")
	ErrInvalidStartURL  = errors.New("start URL must begin with http:// or https://")
	ErrInvalidMaxPages  = errors.New("max-pages must be positive")
	ErrInvalidMaxDepth  = errors.New("max-depth must not be negative")
	ErrInvalidTimeout   = errors.New("request timeout must be positive")
	ErrEmptyOutputPath  = errors.New("output path must not be empty")
	ErrInvalidUserAgent = errors.New("user agent must not be empty")
	ErrNegativeDelay    = errors.New("request delay must not be negative")
)
