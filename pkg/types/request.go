// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// MaxResultsLimit caps how many results a single run may pull from arXiv.
const MaxResultsLimit = 30000

// MatchMode selects how a keyword set combines its terms.
type MatchMode string

const (
	ModeAND MatchMode = "AND"
	ModeOR  MatchMode = "OR"
)

// Valid reports whether the mode is one of the two supported values.
func (m MatchMode) Valid() bool {
	return m == ModeAND || m == ModeOR
}

// KeywordSet is an ordered list of trimmed, non-empty search terms and the
// mode used to combine them. An empty set matches everything.
type KeywordSet struct {
	Terms []string  `yaml:"terms"`
	Mode  MatchMode `yaml:"mode"`
}

// SearchRequest holds the parameters for one pipeline run. It is built by
// the caller (CLI flags or a saved request file) and never mutated once a
// run starts.
type SearchRequest struct {
	// Venue is the free-text phrase matched against the arXiv comments
	// field (e.g. "NeurIPS 2025"). Empty falls back to a broad query.
	Venue string `yaml:"venue"`

	// MaxResults caps the number of streamed results (1..MaxResultsLimit).
	MaxResults int `yaml:"max_results"`

	// TitleKeywords filters the paper title.
	TitleKeywords KeywordSet `yaml:"title_keywords"`

	// AbstractKeywords filters the paper abstract.
	AbstractKeywords KeywordSet `yaml:"abstract_keywords"`

	// RequireOpenSource drops papers without a detectable code link.
	RequireOpenSource bool `yaml:"require_open_source"`

	// DownloadPDFs saves the PDF of each accepted paper to OutputDir.
	DownloadPDFs bool `yaml:"download_pdfs"`

	// OutputDir receives downloaded PDFs and the export file.
	OutputDir string `yaml:"output_dir"`
}

// Validate rejects requests that must not start a run.
func (r SearchRequest) Validate() error {
	if r.MaxResults <= 0 {
		return fmt.Errorf("max results must be greater than 0, got %d", r.MaxResults)
	}
	if r.MaxResults > MaxResultsLimit {
		return fmt.Errorf("max results must be at most %d, got %d", MaxResultsLimit, r.MaxResults)
	}
	if !r.TitleKeywords.Mode.Valid() {
		return fmt.Errorf("invalid title keyword mode %q", r.TitleKeywords.Mode)
	}
	if !r.AbstractKeywords.Mode.Valid() {
		return fmt.Errorf("invalid abstract keyword mode %q", r.AbstractKeywords.Mode)
	}
	return nil
}
