package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

func TestDefault(t *testing.T) {
	req := Default()
	if req.Venue != "NeurIPS 2025" {
		t.Errorf("Venue = %q", req.Venue)
	}
	if req.MaxResults != types.MaxResultsLimit {
		t.Errorf("MaxResults = %d, want %d", req.MaxResults, types.MaxResultsLimit)
	}
	if req.TitleKeywords.Mode != types.ModeOR || req.AbstractKeywords.Mode != types.ModeOR {
		t.Error("default modes should be OR")
	}
	if len(req.TitleKeywords.Terms) == 0 || len(req.AbstractKeywords.Terms) == 0 {
		t.Error("default keyword sets should not be empty")
	}
	if !req.RequireOpenSource || req.DownloadPDFs {
		t.Error("defaults: require open source on, downloads off")
	}
	if err := req.Validate(); err != nil {
		t.Errorf("default request should validate: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := FileStore{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	if !reflect.DeepEqual(s.Load(), Default()) {
		t.Error("missing file should load defaults")
	}
}

func TestLoadCorruptFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("{not yaml::"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := FileStore{Path: path}
	if !reflect.DeepEqual(s.Load(), Default()) {
		t.Error("corrupt file should load defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	s := FileStore{Path: path}

	req := Default()
	req.Venue = "ICLR 2026"
	req.MaxResults = 500
	req.DownloadPDFs = true
	req.TitleKeywords = types.KeywordSet{Terms: []string{"diffusion"}, Mode: types.ModeAND}

	if err := s.Save(req); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.Load()
	if !reflect.DeepEqual(got, req) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, req)
	}
}
