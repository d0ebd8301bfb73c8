package opensource

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

func TestInMetadata(t *testing.T) {
	tests := []struct {
		name  string
		paper types.CandidatePaper
		want  bool
	}{
		{"in title", types.CandidatePaper{Title: "Our code is at github.com/x/y"}, true},
		{"in abstract", types.CandidatePaper{Abstract: "Code: https://GitHub.com/x/y"}, true},
		{"in comment", types.CandidatePaper{Comment: "Accepted; see github.com/x/y"}, true},
		{"in pdf link", types.CandidatePaper{PDFURL: "https://github.com/x/y/raw/paper.pdf"}, true},
		{"case insensitive", types.CandidatePaper{Abstract: "GITHUB.COM/x"}, true},
		{"absent", types.CandidatePaper{Title: "A Paper", Abstract: "No links here"}, false},
		{"empty", types.CandidatePaper{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InMetadata(tt.paper); got != tt.want {
				t.Errorf("InMetadata = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectMetadataHitSkipsNetwork(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer ts.Close()

	d := &Detector{Client: ts.Client(), UserAgent: "test"}
	p := types.CandidatePaper{Comment: "code at github.com/x/y", PDFURL: ts.URL}

	var buf bytes.Buffer
	if !d.Detect(context.Background(), p, true, &buf) {
		t.Error("Detect = false, want true from metadata")
	}
	if calls != 0 {
		t.Errorf("PDF fetched %d times, want 0", calls)
	}
}

func TestDetectNotRequiredSkipsFetch(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer ts.Close()

	d := &Detector{Client: ts.Client(), UserAgent: "test"}
	p := types.CandidatePaper{Title: "No marker anywhere", PDFURL: ts.URL}

	var buf bytes.Buffer
	if d.Detect(context.Background(), p, false, &buf) {
		t.Error("Detect = true, want false without marker")
	}
	if calls != 0 {
		t.Errorf("PDF fetched %d times, want 0 when not required", calls)
	}
}

func TestDetectFetchFailureResolvesFalse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	d := &Detector{Client: ts.Client(), UserAgent: "test"}
	p := types.CandidatePaper{Title: "No marker", PDFURL: ts.URL}

	var buf bytes.Buffer
	if d.Detect(context.Background(), p, true, &buf) {
		t.Error("Detect = true, want false on fetch failure")
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("expected a warning in the log, got %q", buf.String())
	}
}

func TestDetectUnparsablePDFResolvesFalse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "this is not a pdf, but it mentions github.com")
	}))
	defer ts.Close()

	d := &Detector{Client: ts.Client(), UserAgent: "test"}
	p := types.CandidatePaper{Title: "No marker", PDFURL: ts.URL}

	var buf bytes.Buffer
	if d.Detect(context.Background(), p, true, &buf) {
		t.Error("Detect = true, want false when extraction fails")
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("expected a warning in the log, got %q", buf.String())
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := extractText("/nonexistent/file.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
