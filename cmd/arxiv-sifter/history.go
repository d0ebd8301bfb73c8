// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-sifter/internal/catalog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs recorded in the catalog",
	Long: `History lists runs recorded in the local SQLite catalog, newest first.
Use --papers with a run ID to list the papers that run accepted.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("catalog", defaultCatalogPath(), "SQLite run history database")
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().Int64("papers", 0, "list accepted papers of the given run ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return fmt.Errorf("no catalog path: pass --catalog")
	}

	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	runID, _ := cmd.Flags().GetInt64("papers")
	if runID != 0 {
		return listPapers(cat, runID)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := cat.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-25s  %8s  %8s  %s\n",
		"ID", "Started", "Venue", "Scanned", "Accepted", "Export")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range runs {
		venue := r.Venue
		if venue == "" {
			venue = "(broad query)"
		}
		if len(venue) > 25 {
			venue = venue[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-25s  %8d  %8d  %s\n",
			r.ID, r.Started.Format("2006-01-02 15:04"), venue, r.Scanned, r.Accepted, r.ExportPath)
	}

	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(runs))
	return nil
}

func listPapers(cat *catalog.Catalog, runID int64) error {
	records, err := cat.Papers(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No papers recorded for run %d.\n", runID)
		return nil
	}

	for i, rec := range records {
		marker := " "
		if rec.HasOpenSource {
			marker = "+"
		}
		fmt.Fprintf(os.Stdout, "%3d %s %s\n      %s\n", i+1, marker, rec.Title, rec.PDFURL)
	}
	fmt.Fprintf(os.Stdout, "\n%d paper(s), + marks an open-source link\n", len(records))
	return nil
}
