package download

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "A Time Series Model", "A Time Series Model"},
		{"strips punctuation", "BERT: Pre-training / Deep?", "BERT Pre-training  Deep"},
		{"keeps underscores and hyphens", "foo_bar-baz", "foo_bar-baz"},
		{"empty falls back", "", "paper"},
		{"all punctuation falls back", "?!/:*", "paper"},
		{"truncates to 100 runes", strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFetchWritesFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "%PDF-1.4 fake content")
	}))
	defer ts.Close()

	dir := t.TempDir()
	path, err := Fetch(context.Background(), ts.Client(), ts.URL, dir, "A Paper", "test")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if filepath.Base(path) != "A Paper.pdf" {
		t.Errorf("path = %q, want A Paper.pdf", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != "%PDF-1.4 fake content" {
		t.Errorf("content = %q", data)
	}
}

func TestFetchNeverOverwrites(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "pdf bytes")
	}))
	defer ts.Close()

	dir := t.TempDir()
	first, err := Fetch(context.Background(), ts.Client(), ts.URL, dir, "paper", "test")
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := Fetch(context.Background(), ts.Client(), ts.URL, dir, "paper", "test")
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	third, err := Fetch(context.Background(), ts.Client(), ts.URL, dir, "paper", "test")
	if err != nil {
		t.Fatalf("third Fetch: %v", err)
	}

	if filepath.Base(first) != "paper.pdf" {
		t.Errorf("first = %q, want paper.pdf", first)
	}
	if filepath.Base(second) != "paper_1.pdf" {
		t.Errorf("second = %q, want paper_1.pdf", second)
	}
	if filepath.Base(third) != "paper_2.pdf" {
		t.Errorf("third = %q, want paper_2.pdf", third)
	}
}

func TestFetchCreatesDirectory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "pdf")
	}))
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := Fetch(context.Background(), ts.Client(), ts.URL, dir, "p", "test"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestFetchHTTPErrorReturnsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	if _, err := Fetch(context.Background(), ts.Client(), ts.URL, dir, "p", "test"); err == nil {
		t.Fatal("expected error for HTTP 404")
	}

	// No files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("leftover files: %v", entries)
	}
}

func TestWanted(t *testing.T) {
	tests := []struct {
		name     string
		download bool
		require  bool
		has      bool
		want     bool
	}{
		{"download off", false, false, true, false},
		{"download on, no requirement", true, false, false, true},
		{"required and detected", true, true, true, true},
		{"required and missing", true, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := types.SearchRequest{DownloadPDFs: tt.download, RequireOpenSource: tt.require}
			if got := Wanted(req, tt.has); got != tt.want {
				t.Errorf("Wanted = %v, want %v", got, tt.want)
			}
		})
	}
}
