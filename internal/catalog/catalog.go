// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a local SQLite history of completed runs and the
// records they accepted, so past results can be listed without re-querying
// arXiv. Runs are append-only; the catalog is bookkeeping, not a resume
// mechanism.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

// Catalog wraps the SQLite database.
type Catalog struct {
	db *sql.DB
}

// Run is one recorded pipeline run.
type Run struct {
	ID         int64
	Venue      string
	Started    time.Time
	Scanned    int
	Accepted   int
	ExportPath string
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue TEXT,
			started TEXT NOT NULL,
			scanned INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			export_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			title TEXT,
			authors TEXT,
			pdf_url TEXT,
			published TEXT,
			categories TEXT,
			comment TEXT,
			summary TEXT,
			has_open_source INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun appends one run and its accepted records in a single
// transaction and returns the new run ID.
func (c *Catalog) RecordRun(run Run, records []types.AcceptedRecord) (int64, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (venue, started, scanned, accepted, export_path) VALUES (?, ?, ?, ?, ?)`,
		run.Venue, run.Started.UTC().Format(time.RFC3339), run.Scanned, len(records), run.ExportPath,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO papers
		(run_id, title, authors, pdf_url, published, categories, comment, summary, has_open_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			runID,
			rec.Title,
			strings.Join(rec.Authors, ", "),
			rec.PDFURL,
			rec.Published.Format("2006-01-02"),
			strings.Join(rec.Categories, ", "),
			rec.Comment,
			rec.Abstract,
			boolToInt(rec.HasOpenSource),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", rec.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (c *Catalog) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.Query(
		`SELECT id, venue, started, scanned, accepted, export_path
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Venue, &started, &r.Scanned, &r.Accepted, &r.ExportPath); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.Started = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Papers returns the accepted records of one run in insertion order.
func (c *Catalog) Papers(runID int64) ([]types.AcceptedRecord, error) {
	rows, err := c.db.Query(
		`SELECT title, authors, pdf_url, published, categories, comment, summary, has_open_source
		 FROM papers WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var records []types.AcceptedRecord
	for rows.Next() {
		var rec types.AcceptedRecord
		var authors, published, categories string
		var hasOS int
		if err := rows.Scan(&rec.Title, &authors, &rec.PDFURL, &published,
			&categories, &rec.Comment, &rec.Abstract, &hasOS); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		rec.Authors = splitJoined(authors)
		rec.Categories = splitJoined(categories)
		if t, parseErr := time.Parse("2006-01-02", published); parseErr == nil {
			rec.Published = t
		}
		rec.HasOpenSource = hasOS != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

func splitJoined(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	return parts
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
