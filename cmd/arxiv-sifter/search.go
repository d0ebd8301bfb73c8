package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-sifter/internal/config"
	"github.com/pdiddy/arxiv-sifter/internal/filter"
	"github.com/pdiddy/arxiv-sifter/internal/httputil"
	"github.com/pdiddy/arxiv-sifter/internal/pipeline"
	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultPageDelay = 3 * time.Second
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search arXiv, filter by keywords, and export matches to xlsx",
	Long: `Search streams papers from the arXiv API newest first, keeps those whose
title and abstract match the keyword filters, optionally requires an
open-source code link (checking the PDF full text when the metadata is
inconclusive), and writes the accepted set to a timestamped xlsx file.

Flag values you set are remembered and become the defaults for the next
invocation.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("venue", "", "venue text to match in the comment field (empty: broad query)")
	searchCmd.Flags().Int("max-results", 0, fmt.Sprintf("maximum papers to scan, at most %d", types.MaxResultsLimit))
	searchCmd.Flags().String("title-keywords", "", "comma-separated title keywords")
	searchCmd.Flags().String("title-mode", "", "title keyword combination: and, or")
	searchCmd.Flags().String("abs-keywords", "", "comma-separated abstract keywords")
	searchCmd.Flags().String("abs-mode", "", "abstract keyword combination: and, or")
	searchCmd.Flags().Bool("require-open-source", true, "keep only papers with a github.com link")
	searchCmd.Flags().Bool("download", false, "download PDFs of accepted papers")
	searchCmd.Flags().String("out-dir", "", "directory for the xlsx export and downloads")
	searchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	searchCmd.Flags().Duration("page-delay", defaultPageDelay, "pause between arXiv result pages")
	searchCmd.Flags().String("catalog", defaultCatalogPath(), "SQLite run history database (empty: disable)")
	searchCmd.Flags().String("state", defaultStatePath(), "file remembering the last-used settings (empty: disable)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	statePath, _ := cmd.Flags().GetString("state")

	req := config.Default()
	var store config.FileStore
	if statePath != "" {
		store = config.FileStore{Path: statePath}
		req = store.Load()
	}

	if err := applyFlags(cmd, &req); err != nil {
		return err
	}

	if req.MaxResults > types.MaxResultsLimit {
		fmt.Fprintf(os.Stderr, "max-results capped at %d\n", types.MaxResultsLimit)
		req.MaxResults = types.MaxResultsLimit
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	pageDelay, _ := cmd.Flags().GetDuration("page-delay")
	catalogPath, _ := cmd.Flags().GetString("catalog")

	cfg := types.PipelineConfig{
		Stream: types.StreamConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: userAgent(),
			},
			PageDelay: pageDelay,
		},
		CatalogPath: catalogPath,
	}

	client := httputil.NewClient(cfg.Stream.HTTPConfig)

	if statePath != "" {
		if saveErr := store.Save(req); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: saving settings: %v\n", saveErr)
		}
	}

	res, err := pipeline.Run(context.Background(), client, req, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if res.DownloadsFailed > 0 {
		fmt.Fprintf(os.Stderr, "%d PDF download(s) failed\n", res.DownloadsFailed)
	}
	return nil
}

// applyFlags overlays flags the user actually set onto the remembered
// request, so unset flags keep their last-used values.
func applyFlags(cmd *cobra.Command, req *types.SearchRequest) error {
	flags := cmd.Flags()

	if flags.Changed("venue") {
		req.Venue, _ = flags.GetString("venue")
	}
	if flags.Changed("max-results") {
		req.MaxResults, _ = flags.GetInt("max-results")
	}
	if flags.Changed("title-mode") {
		raw, _ := flags.GetString("title-mode")
		mode, err := parseMode("title-mode", raw)
		if err != nil {
			return err
		}
		req.TitleKeywords.Mode = mode
	}
	if flags.Changed("abs-mode") {
		raw, _ := flags.GetString("abs-mode")
		mode, err := parseMode("abs-mode", raw)
		if err != nil {
			return err
		}
		req.AbstractKeywords.Mode = mode
	}
	if flags.Changed("title-keywords") {
		raw, _ := flags.GetString("title-keywords")
		req.TitleKeywords = filter.Parse(raw, req.TitleKeywords.Mode)
	}
	if flags.Changed("abs-keywords") {
		raw, _ := flags.GetString("abs-keywords")
		req.AbstractKeywords = filter.Parse(raw, req.AbstractKeywords.Mode)
	}
	if flags.Changed("require-open-source") {
		req.RequireOpenSource, _ = flags.GetBool("require-open-source")
	}
	if flags.Changed("download") {
		req.DownloadPDFs, _ = flags.GetBool("download")
	}
	if flags.Changed("out-dir") {
		req.OutputDir, _ = flags.GetString("out-dir")
	}
	return nil
}

func parseMode(name, raw string) (types.MatchMode, error) {
	mode := types.MatchMode(strings.ToUpper(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", fmt.Errorf("invalid %s %q: use and or or", name, raw)
	}
	return mode, nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "arxiv-sifter", "last-request.yaml")
}

func defaultCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "arxiv-sifter", "catalog.db")
}
