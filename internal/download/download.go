// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download persists paper PDFs with collision-safe filenames.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdiddy/arxiv-sifter/internal/httputil"
	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

const (
	maxNameRunes = 100
	fallbackName = "paper"
)

// SanitizeTitle reduces a paper title to a filesystem-safe filename stem:
// only letters, digits, spaces, underscores, and hyphens survive, truncated
// to 100 runes. An empty result falls back to "paper".
func SanitizeTitle(title string) string {
	var b strings.Builder
	count := 0
	for _, r := range title {
		if count >= maxNameRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
			count++
		}
	}
	if b.Len() == 0 {
		return fallbackName
	}
	return b.String()
}

// Fetch downloads pdfURL into dir, naming the file after the sanitized
// title hint. An existing file is never overwritten: a numeric suffix is
// appended before the extension until a free name is found. The returned
// path is the file actually written.
func Fetch(ctx context.Context, client *http.Client, pdfURL, dir, titleHint, userAgent string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	resp, err := httputil.Get(ctx, client, pdfURL, userAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	destPath := collisionFreePath(dir, SanitizeTitle(titleHint), ".pdf")

	tmp, err := os.CreateTemp(dir, ".download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}

// collisionFreePath returns dir/base+ext, or dir/base_N+ext for the first
// N ≥ 1 that does not exist yet.
func collisionFreePath(dir, base, ext string) string {
	path := filepath.Join(dir, base+ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
}

// Wanted guards the download decision: only when the request asks for
// downloads and the paper either needs no open-source proof or has it.
func Wanted(req types.SearchRequest, hasOpenSource bool) bool {
	return req.DownloadPDFs && (!req.RequireOpenSource || hasOpenSource)
}
