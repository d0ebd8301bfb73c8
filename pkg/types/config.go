package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-sifter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StreamConfig holds settings for the arXiv result stream.
type StreamConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of entries requested per API page (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// PageDelay is the pause between consecutive page fetches. The arXiv
	// terms of use ask for at least 3 seconds between requests.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// PipelineConfig groups the settings for one pipeline run.
type PipelineConfig struct {
	// Stream configures the arXiv result stream.
	Stream StreamConfig `json:"stream" yaml:"stream"`

	// CatalogPath is the SQLite run catalog location. Empty disables the
	// catalog.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`
}
