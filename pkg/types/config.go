// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ortho-catalog/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// DBPath is the SQLite database path (default "catalog/ortho.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ScanConfig holds settings for the rename-scan stage.
type ScanConfig struct {
	// LibraryRoot is the article library root directory.
	LibraryRoot string `json:"library_root" yaml:"library_root"`

	// Workers bounds the number of concurrent text extractions (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// OutputDir is the directory for review artifacts (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// TextBackend selects the page-text extraction tool (default "pdftotext").
	TextBackend string `json:"text_backend" yaml:"text_backend"`
}

// LookupConfig holds settings for external bibliographic lookup.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the lookup API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestInterval is the fixed delay between lookup calls (default 500ms).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`

	// MaxRetries bounds backoff retries on transient failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// MatchConfig holds settings for timeline-to-catalog matching.
type MatchConfig struct {
	// MinConfidence is the floor below which a candidate is discarded
	// (default 0.4).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// CandidateLimit bounds the fuzzy-index candidate set (default 20).
	CandidateLimit int `json:"candidate_limit" yaml:"candidate_limit"`
}

// DedupeConfig holds settings for the duplicate finder.
type DedupeConfig struct {
	// LibraryRoot is the article library root directory.
	LibraryRoot string `json:"library_root" yaml:"library_root"`

	// CheckContent enables the expensive content-hash pass.
	CheckContent bool `json:"check_content" yaml:"check_content"`

	// SizeTolerance is the allowed deviation from the group mean size for
	// suggested-filename groups (default 0.10).
	SizeTolerance float64 `json:"size_tolerance" yaml:"size_tolerance"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	Lookup  LookupConfig  `json:"lookup" yaml:"lookup"`
	Match   MatchConfig   `json:"match" yaml:"match"`
	Dedupe  DedupeConfig  `json:"dedupe" yaml:"dedupe"`
}
