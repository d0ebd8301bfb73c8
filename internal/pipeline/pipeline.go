// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the sequential search-filter-detect-export loop.
// One worker per invocation, candidates processed one at a time, in order;
// the export happens exactly once after the stream is exhausted.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/arxiv-sifter/internal/arxiv"
	"github.com/pdiddy/arxiv-sifter/internal/catalog"
	"github.com/pdiddy/arxiv-sifter/internal/download"
	"github.com/pdiddy/arxiv-sifter/internal/export"
	"github.com/pdiddy/arxiv-sifter/internal/filter"
	"github.com/pdiddy/arxiv-sifter/internal/opensource"
	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

// Result summarizes one completed (or aborted) run.
type Result struct {
	Scanned         int
	Accepted        int
	Downloaded      int
	DownloadsFailed int
	ExportPath      string
}

// Run executes the pipeline for req, writing progress lines to w. Only a
// remote stream failure aborts the run; per-item fetch and parse problems
// are logged and skipped. On abort nothing is exported, but progress
// already written to w stands.
func Run(ctx context.Context, client *http.Client, req types.SearchRequest, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	var res Result

	if err := req.Validate(); err != nil {
		return res, err
	}

	fmt.Fprintln(w, "searching arXiv, this may take a while...")

	query, broadened := arxiv.BuildQuery(req.Venue)
	if broadened {
		fmt.Fprintf(w, "warning: no venue text given, using the broad query %q; all selectivity comes from local filtering\n", query)
	}

	stream := arxiv.NewStream(client, query, req.MaxResults, cfg.Stream)
	detector := &opensource.Detector{Client: client, UserAgent: cfg.Stream.UserAgent}

	var records []types.AcceptedRecord
	for {
		p, err := stream.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("arXiv stream: %w", err)
		}
		res.Scanned++
		fmt.Fprintf(w, "scanning %d: %s\n", res.Scanned, p.Title)

		if !filter.Matches(p.Title, req.TitleKeywords) {
			continue
		}
		if !filter.Matches(p.Abstract, req.AbstractKeywords) {
			continue
		}

		hasOpenSource := detector.Detect(ctx, p, req.RequireOpenSource, w)
		if req.RequireOpenSource && !hasOpenSource {
			fmt.Fprintf(w, "skipped: no code link found: %s\n", p.Title)
			continue
		}

		fmt.Fprintf(w, "hit: %s\n", p.Title)

		if download.Wanted(req, hasOpenSource) {
			path, err := download.Fetch(ctx, client, p.PDFURL, req.OutputDir, p.Title, cfg.Stream.UserAgent)
			if err != nil {
				fmt.Fprintf(w, "warning: PDF download failed, skipping: %s (%v)\n", p.PDFURL, err)
				res.DownloadsFailed++
			} else {
				fmt.Fprintf(w, "downloaded: %s\n", path)
				res.Downloaded++
			}
		}

		records = append(records, types.AcceptedRecord{CandidatePaper: p, HasOpenSource: hasOpenSource})
	}
	res.Accepted = len(records)

	if len(records) > 0 {
		path, err := export.Write(req.OutputDir, req.Venue, records, time.Now())
		if err != nil {
			return res, fmt.Errorf("writing export: %w", err)
		}
		res.ExportPath = path
		fmt.Fprintf(w, "\ndone: kept %d paper(s), exported to %s\n", len(records), path)
	} else {
		fmt.Fprintln(w, "\nno papers matched the filters, nothing exported")
	}

	if cfg.CatalogPath != "" {
		if err := record(cfg.CatalogPath, req, res, records); err != nil {
			fmt.Fprintf(w, "warning: recording run in catalog: %v\n", err)
		}
	}

	return res, nil
}

// record appends the run to the catalog. Catalog trouble never fails a
// run that already produced its export.
func record(path string, req types.SearchRequest, res Result, records []types.AcceptedRecord) error {
	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	_, err = cat.RecordRun(catalog.Run{
		Venue:      req.Venue,
		Started:    time.Now(),
		Scanned:    res.Scanned,
		ExportPath: res.ExportPath,
	}, records)
	return err
}
