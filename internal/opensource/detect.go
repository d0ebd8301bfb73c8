// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opensource decides whether a paper references a public code
// repository. Metadata is checked first; the PDF full text is consulted
// only when the caller requires an open-source determination and the
// metadata was inconclusive.
package opensource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/arxiv-sifter/internal/httputil"
	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

// Marker is the domain string treated as evidence of a public code repository.
const Marker = "github.com"

// Detector resolves open-source status for candidates.
type Detector struct {
	Client    *http.Client
	UserAgent string
}

// InMetadata reports whether the marker appears in any metadata field
// (title, abstract, comment, PDF link). No network cost.
func InMetadata(p types.CandidatePaper) bool {
	meta := strings.ToLower(strings.Join([]string{p.Title, p.Abstract, p.Comment, p.PDFURL}, " "))
	return strings.Contains(meta, Marker)
}

// Detect determines open-source status for a candidate. When the metadata
// carries the marker the answer is true without any fetch. Otherwise, if
// required is false the answer is false and no fetch happens: the paper is
// kept regardless, so the PDF cost is not worth paying. Only when required
// is true and the metadata is inconclusive does Detect fetch the PDF and
// scan its text. Any fetch or parse failure is logged to w and resolves
// to false; it never aborts the run.
func (d *Detector) Detect(ctx context.Context, p types.CandidatePaper, required bool, w io.Writer) bool {
	if InMetadata(p) {
		return true
	}
	if !required {
		return false
	}
	return d.pdfContainsMarker(ctx, p.PDFURL, w)
}

// pdfContainsMarker downloads the PDF to a temporary file, extracts its
// text, and scans for the marker. The temporary file is removed on every
// exit path.
func (d *Detector) pdfContainsMarker(ctx context.Context, pdfURL string, w io.Writer) bool {
	resp, err := httputil.Get(ctx, d.Client, pdfURL, d.UserAgent)
	if err != nil {
		fmt.Fprintf(w, "warning: PDF fetch failed, skipping code-link check: %s (%v)\n", pdfURL, err)
		return false
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "arxiv-sifter-*.pdf")
	if err != nil {
		fmt.Fprintf(w, "warning: creating temp file: %v\n", err)
		return false
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		fmt.Fprintf(w, "warning: writing PDF: %v\n", copyErr)
		return false
	}
	if closeErr != nil {
		fmt.Fprintf(w, "warning: closing temp file: %v\n", closeErr)
		return false
	}

	text, err := extractText(tmpPath)
	if err != nil {
		fmt.Fprintf(w, "warning: PDF text extraction failed, treating as no code link: %s (%v)\n", pdfURL, err)
		return false
	}
	return strings.Contains(strings.ToLower(text), Marker)
}

// extractText returns the concatenated plain text of all pages.
func extractText(path string) (text string, err error) {
	// The pdf package can panic on malformed input; a corrupt download
	// must degrade to "no marker found", not crash the run.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting PDF text: %w", err)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, reader); err != nil {
		return "", fmt.Errorf("reading extracted text: %w", err)
	}
	return b.String(), nil
}
