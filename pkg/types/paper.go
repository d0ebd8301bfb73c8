// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CandidatePaper is one streamed arXiv result before any filtering decision.
// All fields come from the API feed; the pipeline only reads them.
type CandidatePaper struct {
	// Title is the paper title with surrounding whitespace trimmed.
	Title string `yaml:"title"`

	// Authors lists the paper authors in feed order.
	Authors []string `yaml:"authors"`

	// Abstract is the paper summary.
	Abstract string `yaml:"abstract"`

	// Comment is the free-text comments field (venue, page count, etc.).
	Comment string `yaml:"comment,omitempty"`

	// Categories lists the arXiv category terms (e.g. "cs.LG").
	Categories []string `yaml:"categories,omitempty"`

	// PDFURL is the download link for the paper PDF.
	PDFURL string `yaml:"pdf_url"`

	// Published is the submission timestamp.
	Published time.Time `yaml:"published"`
}

// AcceptedRecord is the immutable snapshot of a candidate that survived all
// filters, plus the computed open-source determination. It is the unit
// appended to the export table and the run catalog.
type AcceptedRecord struct {
	CandidatePaper `yaml:",inline"`

	// HasOpenSource reports whether a code-hosting link was detected in
	// the metadata or the PDF full text.
	HasOpenSource bool `yaml:"has_open_source"`
}
