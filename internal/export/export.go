// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes accepted records to a single xlsx table.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

const (
	sheetName     = "Sheet1"
	maxVenueRunes = 40
	fallbackVenue = "comment"
	timestampFmt  = "20060102_150405"
)

// Headers are the export columns in order.
var Headers = []string{
	"Title", "Authors", "PDF Link", "Published Date",
	"Categories", "Comments", "Summary", "Has GitHub",
}

// SanitizeVenue reduces the venue text for use in the export filename:
// letters, digits, spaces, underscores, and hyphens, trimmed, at most 40
// runes, defaulting to "comment" when nothing survives.
func SanitizeVenue(venue string) string {
	var b strings.Builder
	for _, r := range venue {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if runes := []rune(s); len(runes) > maxVenueRunes {
		s = strings.TrimSpace(string(runes[:maxVenueRunes]))
	}
	if s == "" {
		return fallbackVenue
	}
	return s
}

// Filename builds the deterministic export name. The count is the number
// of rows written; the timestamp has second resolution.
func Filename(venue string, count int, ts time.Time) string {
	return fmt.Sprintf("Arxiv_Search_Result_%s_%d篇_%s.xlsx",
		SanitizeVenue(venue), count, ts.Format(timestampFmt))
}

// Write creates the export file under dir and returns its path. The caller
// must not invoke it with zero records; the export is all-or-nothing and
// happens exactly once per run.
func Write(dir, venue string, records []types.AcceptedRecord, ts time.Time) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("nothing to export")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &Headers); err != nil {
		return "", fmt.Errorf("writing header row: %w", err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		row := []interface{}{
			rec.Title,
			strings.Join(rec.Authors, ", "),
			rec.PDFURL,
			rec.Published.Format("2006-01-02"),
			strings.Join(rec.Categories, ", "),
			rec.Comment,
			strings.ReplaceAll(rec.Abstract, "\n", " "),
			rec.HasOpenSource,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(dir, Filename(venue, len(records), ts))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving export: %w", err)
	}
	return path, nil
}
